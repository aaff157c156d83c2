package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
	"github.com/chazu/tamc/wire"
	"github.com/tliron/commonlog"
	"github.com/tliron/commonlog/simple"
)

// writeTree writes let var i : Integer in (getint(var i); putint(i)) to
// dir/name and returns its path.
func writeTree(t *testing.T, dir, name string) string {
	t.Helper()
	b := ast.NewBuilder()
	env := ast.NewStdEnvironment(b)
	i := ast.New(b, &ast.VarDeclaration{Name: "i", T: env.IntegerType})
	iv := func() ast.Vname {
		return &ast.SimpleVname{T: env.IntegerType, Name: &ast.Identifier{Spelling: "i", Decl: i}}
	}
	prog := &ast.Program{Body: &ast.LetCommand{
		Decl: i,
		Body: &ast.SequentialCommand{Commands: []ast.Command{
			&ast.CallCommand{
				Callee: &ast.Identifier{Spelling: "getint", Decl: env.GetintDecl},
				Args:   []ast.ActualParameter{&ast.VarActualParameter{V: iv()}},
			},
			&ast.CallCommand{
				Callee: &ast.Identifier{Spelling: "putint", Decl: env.PutintDecl},
				Args: []ast.ActualParameter{&ast.ConstActualParameter{
					E: &ast.VnameExpression{T: env.IntegerType, V: iv()},
				}},
			},
		}},
	}}

	data, err := wire.MarshalTree(env, prog)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readObject(t *testing.T, path string) []tam.Instruction {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	code, err := tam.ReadObject(f)
	if err != nil {
		t.Fatalf("ReadObject failed: %v", err)
	}
	return code
}

func TestRunWritesObjectAndTable(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		tree:    writeTree(t, dir, "p.tree"),
		object:  filepath.Join(dir, "p.tam"),
		table:   filepath.Join(dir, "p.table"),
		listing: true,
		dir:     dir,
	}
	var stdout, stderr bytes.Buffer
	if err := run(opts, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	code := readObject(t, opts.object)
	if len(code) != 7 {
		t.Errorf("object has %d instructions, want 7:\n%s", len(code), tam.Disassemble(code))
	}
	if code[len(code)-1].Op != tam.HALT {
		t.Errorf("last instruction = %v, want HALT", code[len(code)-1])
	}

	data, err := os.ReadFile(opts.table)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := wire.UnmarshalTable(data)
	if err != nil {
		t.Fatalf("UnmarshalTable failed: %v", err)
	}
	var found bool
	for _, e := range entries {
		if e.Name == "i" && e.Kind == "KnownAddress" {
			found = true
		}
	}
	if !found {
		t.Errorf("table has no KnownAddress entry for i: %v", entries)
	}

	if !strings.Contains(stdout.String(), "0002  CALL getint") {
		t.Errorf("listing missing getint call:\n%s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("unexpected diagnostics: %s", stderr.String())
	}
}

func TestRunUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "hello.tree")
	toml := `
[project]
name = "hello"

[build]
tree = "hello.tree"
object = "hello.tam"
`
	if err := os.WriteFile(filepath.Join(dir, "tamc.toml"), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if err := run(options{dir: dir}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if code := readObject(t, filepath.Join(dir, "hello.tam")); len(code) != 7 {
		t.Errorf("object has %d instructions, want 7", len(code))
	}
}

func TestRunReportsRestrictions(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		tree:   writeTree(t, dir, "p.tree"),
		object: filepath.Join(dir, "p.tam"),
		limit:  2,
		dir:    dir,
	}
	var stdout, stderr bytes.Buffer
	if err := run(opts, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "restriction: TAM code store is full") {
		t.Errorf("stderr = %q, want code store restriction", stderr.String())
	}
	if code := readObject(t, opts.object); len(code) != 2 {
		t.Errorf("object has %d instructions, want 2", len(code))
	}
}

func TestRunLogsEachRestrictionOnce(t *testing.T) {
	var logged bytes.Buffer
	backend := simple.NewBackend()
	backend.Writer = &logged
	backend.SetMaxLevel(commonlog.Debug)
	commonlog.SetBackend(backend)
	t.Cleanup(func() { commonlog.SetBackend(nil) })

	dir := t.TempDir()
	opts := options{
		tree:   writeTree(t, dir, "p.tree"),
		object: filepath.Join(dir, "p.tam"),
		limit:  2,
		dir:    dir,
	}
	if err := run(opts, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n := strings.Count(logged.String(), "TAM code store is full"); n != 1 {
		t.Errorf("restriction logged %d times, want 1:\n%s", n, logged.String())
	}
}

func TestRunDisassemble(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.tam")
	var obj bytes.Buffer
	code := []tam.Instruction{{Op: tam.LOADL, D: 5}, {Op: tam.HALT}}
	if err := tam.WriteObject(&obj, code); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, obj.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run(options{disasm: path}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "0000  LOADL 5\n0001  HALT\n"; stdout.String() != want {
		t.Errorf("disassembly = %q, want %q", stdout.String(), want)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "bad.tree")
	if err := os.WriteFile(garbage, []byte("not cbor"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(options{dir: dir}, &bytes.Buffer{}, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("no tree: err = %v, want errUsage", err)
	}
	if err := run(options{tree: filepath.Join(dir, "missing.tree"), dir: dir}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("missing tree: run succeeded")
	}
	if err := run(options{tree: garbage, dir: dir}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("garbage tree: run succeeded")
	}
	for _, limit := range []int{-1, 5000} {
		err := run(options{tree: garbage, limit: limit, dir: dir}, &bytes.Buffer{}, &bytes.Buffer{})
		if err == nil {
			t.Errorf("limit %d: run succeeded", limit)
		} else if want := fmt.Sprintf("out of range 0..%d", tam.CodeLimit); !strings.Contains(err.Error(), want) {
			t.Errorf("limit %d: err = %v, want it to mention %q", limit, err, want)
		}
	}
}
