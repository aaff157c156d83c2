package codegen

import (
	"github.com/chazu/tamc/ast"
	"github.com/chazu/tamc/tam"
)

// bindStdEnvironment binds the standard declarations to constants and
// primitive routines. It runs before any user code is generated.
func (c *Encoder) bindStdEnvironment() {
	env := c.env

	c.bindStdType(env.BooleanDecl, tam.BooleanSize)
	c.bindStdType(env.CharDecl, tam.CharacterSize)
	c.bindStdType(env.IntegerDecl, tam.IntegerSize)

	c.bindStdConst(env.FalseDecl, tam.BooleanSize, tam.FalseRep)
	c.bindStdConst(env.TrueDecl, tam.BooleanSize, tam.TrueRep)
	c.bindStdConst(env.MaxintDecl, tam.IntegerSize, tam.MaxintRep)

	prims := []struct {
		decl ast.Declaration
		d    int
	}{
		{env.NotDecl, tam.NotDisplacement},
		{env.AndDecl, tam.AndDisplacement},
		{env.OrDecl, tam.OrDisplacement},
		{env.SuccDecl, tam.SuccDisplacement},
		{env.PredDecl, tam.PredDisplacement},
		{env.AddDecl, tam.AddDisplacement},
		{env.SubtractDecl, tam.SubDisplacement},
		{env.MultiplyDecl, tam.MultDisplacement},
		{env.DivideDecl, tam.DivDisplacement},
		{env.ModuloDecl, tam.ModDisplacement},
		{env.LessDecl, tam.LtDisplacement},
		{env.NotGreaterDecl, tam.LeDisplacement},
		{env.GreaterDecl, tam.GtDisplacement},
		{env.NotLessDecl, tam.GeDisplacement},
		{env.LexLessDecl, tam.FixedLexDisplacement},
		{env.ChrDecl, tam.IDDisplacement},
		{env.OrdDecl, tam.IDDisplacement},
		{env.EolDecl, tam.EolDisplacement},
		{env.EofDecl, tam.EofDisplacement},
		{env.GetDecl, tam.GetDisplacement},
		{env.PutDecl, tam.PutDisplacement},
		{env.GetintDecl, tam.GetintDisplacement},
		{env.PutintDecl, tam.PutintDisplacement},
		{env.GeteolDecl, tam.GeteolDisplacement},
		{env.PuteolDecl, tam.PuteolDisplacement},
	}
	for _, p := range prims {
		c.entities.bind(p.decl, ast.DeclName(p.decl), PrimitiveRoutine{Displacement: p.d})
	}

	c.entities.bind(env.EqualDecl, env.EqualDecl.Spelling, EqualityRoutine{Displacement: tam.EqDisplacement})
	c.entities.bind(env.UnequalDecl, env.UnequalDecl.Spelling, EqualityRoutine{Displacement: tam.NeDisplacement})
}

func (c *Encoder) bindStdType(decl *ast.TypeDeclaration, size int) {
	c.entities.bind(decl, decl.Name, TypeRepresentation{Size: size, Payload: size})
}

func (c *Encoder) bindStdConst(decl *ast.ConstDeclaration, size, value int) {
	c.entities.bind(decl, decl.Name, KnownValue{Size: size, Value: value})
}
