// tamc - generates TAM object code from an annotated Triangle syntax tree
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chazu/tamc/codegen"
	"github.com/chazu/tamc/diag"
	"github.com/chazu/tamc/manifest"
	"github.com/chazu/tamc/tam"
	"github.com/chazu/tamc/wire"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// errUsage is returned when no input tree was named.
var errUsage = errors.New("no input tree: name one on the command line or in tamc.toml [build] tree")

// options holds the command line after flag parsing.
type options struct {
	tree    string
	object  string
	table   string
	disasm  string
	limit   int
	listing bool
	dir     string // where to look for tamc.toml
}

func main() {
	object := flag.String("o", "", "Object program output (default: manifest build.object or obj.tam)")
	table := flag.String("table", "", "Write the entity table (CBOR) to this file")
	listing := flag.Bool("d", false, "Print a disassembly of the generated code")
	disasm := flag.String("disasm", "", "Disassemble an existing object program and exit")
	limit := flag.Int("limit", 0, "Code store size in instructions (default 1024)")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tamc [options] [tree.cbor]\n\n")
		fmt.Fprintf(os.Stderr, "Generates TAM object code from an annotated syntax tree.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tamc build/hello.tree           # Write obj.tam\n")
		fmt.Fprintf(os.Stderr, "  tamc -d -o hello.tam hello.tree  # Write hello.tam and list it\n")
		fmt.Fprintf(os.Stderr, "  tamc -disasm hello.tam           # List an object program\n")
	}
	flag.Parse()

	verbosity := -2
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	opts := options{
		object:  *object,
		table:   *table,
		disasm:  *disasm,
		limit:   *limit,
		listing: *listing,
		dir:     ".",
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	if flag.NArg() == 1 {
		opts.tree = flag.Arg(0)
	}

	if err := run(opts, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run performs one invocation. Restriction diagnostics are written to
// stderr and do not make it fail.
func run(opts options, stdout, stderr io.Writer) error {
	log := commonlog.GetLogger("tamc")
	if opts.disasm != "" {
		return disassemble(opts.disasm, stdout)
	}

	m, err := manifest.FindAndLoad(opts.dir)
	if err != nil {
		return err
	}
	cgOpts := codegen.Options{CodeLimit: opts.limit}
	if m != nil {
		log.Infof("using %s in %s", manifest.FileName, m.Dir)
		if opts.tree == "" {
			opts.tree = m.TreePath()
		}
		if opts.object == "" {
			opts.object = m.ObjectPath()
		}
		if opts.table == "" {
			opts.table = m.TablePath()
		}
		if cgOpts.CodeLimit == 0 {
			cgOpts.CodeLimit = m.Codegen.CodeLimit
		}
		cgOpts.TableDetails = m.Codegen.TableDetails
	}
	if opts.tree == "" {
		return errUsage
	}
	if opts.object == "" {
		opts.object = "obj.tam"
	}
	if opts.table != "" {
		cgOpts.TableDetails = true
	}
	if cgOpts.CodeLimit < 0 || cgOpts.CodeLimit > tam.CodeLimit {
		return fmt.Errorf("code store size %d out of range 0..%d", cgOpts.CodeLimit, tam.CodeLimit)
	}

	data, err := os.ReadFile(opts.tree)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", opts.tree, err)
	}
	tree, err := wire.UnmarshalTree(data)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.tree, err)
	}

	diags := diag.NewCollector()
	prog := codegen.NewEncoder(tree.Env, diags, cgOpts).Generate(tree.Program)
	if err := diags.Print(stderr); err != nil {
		return err
	}

	var obj bytes.Buffer
	if err := tam.WriteObject(&obj, prog.Code); err != nil {
		return err
	}
	if err := os.WriteFile(opts.object, obj.Bytes(), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", opts.object, err)
	}
	log.Infof("wrote %d instructions to %s", len(prog.Code), opts.object)

	if opts.table != "" {
		tbl, err := wire.MarshalTable(prog.Table)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.table, tbl, 0644); err != nil {
			return fmt.Errorf("cannot write %s: %w", opts.table, err)
		}
		log.Infof("wrote %d table entries to %s", len(prog.Table), opts.table)
	}

	if opts.listing {
		fmt.Fprintln(stdout, tam.Disassemble(prog.Code))
	}
	return nil
}

func disassemble(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer f.Close()

	code, err := tam.ReadObject(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = fmt.Fprintln(w, tam.Disassemble(code))
	return err
}
