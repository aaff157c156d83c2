package ast

// StdEnvironment holds the declarations every program can refer to without
// declaring them: the primitive types, the Boolean and Integer constants, the
// standard operators and the input/output routines.
type StdEnvironment struct {
	BooleanType *BoolTypeDenoter
	CharType    *CharTypeDenoter
	IntegerType *IntTypeDenoter
	AnyType     *AnyTypeDenoter
	ErrorType   *ErrorTypeDenoter
	NilType     *NilTypeDenoter

	BooleanDecl *TypeDeclaration
	CharDecl    *TypeDeclaration
	IntegerDecl *TypeDeclaration

	FalseDecl  *ConstDeclaration
	TrueDecl   *ConstDeclaration
	MaxintDecl *ConstDeclaration

	NotDecl        *UnaryOperatorDeclaration
	AndDecl        *BinaryOperatorDeclaration
	OrDecl         *BinaryOperatorDeclaration
	AddDecl        *BinaryOperatorDeclaration
	SubtractDecl   *BinaryOperatorDeclaration
	MultiplyDecl   *BinaryOperatorDeclaration
	DivideDecl     *BinaryOperatorDeclaration
	ModuloDecl     *BinaryOperatorDeclaration
	LessDecl       *BinaryOperatorDeclaration
	NotGreaterDecl *BinaryOperatorDeclaration
	GreaterDecl    *BinaryOperatorDeclaration
	NotLessDecl    *BinaryOperatorDeclaration
	LexLessDecl    *BinaryOperatorDeclaration
	EqualDecl      *BinaryOperatorDeclaration
	UnequalDecl    *BinaryOperatorDeclaration

	ChrDecl    *FuncDeclaration
	OrdDecl    *FuncDeclaration
	EolDecl    *FuncDeclaration
	EofDecl    *FuncDeclaration
	SuccDecl   *FuncDeclaration
	PredDecl   *FuncDeclaration
	GetDecl    *ProcDeclaration
	PutDecl    *ProcDeclaration
	GetintDecl *ProcDeclaration
	PutintDecl *ProcDeclaration
	GeteolDecl *ProcDeclaration
	PuteolDecl *ProcDeclaration

	decls map[string]Declaration
	types map[string]TypeDenoter
}

// NewStdEnvironment builds the standard environment with identifiers from b.
func NewStdEnvironment(b *Builder) *StdEnvironment {
	env := &StdEnvironment{
		decls: make(map[string]Declaration),
		types: make(map[string]TypeDenoter),
	}

	env.BooleanType = New(b, &BoolTypeDenoter{})
	env.CharType = New(b, &CharTypeDenoter{})
	env.IntegerType = New(b, &IntTypeDenoter{})
	env.AnyType = New(b, &AnyTypeDenoter{})
	env.ErrorType = New(b, &ErrorTypeDenoter{})
	env.NilType = New(b, &NilTypeDenoter{})

	env.types["Boolean"] = env.BooleanType
	env.types["Char"] = env.CharType
	env.types["Integer"] = env.IntegerType
	env.types["any"] = env.AnyType
	env.types["error"] = env.ErrorType
	env.types["nil"] = env.NilType

	typeDecl := func(name string, t TypeDenoter) *TypeDeclaration {
		d := New(b, &TypeDeclaration{Name: name, T: t})
		env.decls[name] = d
		return d
	}
	env.BooleanDecl = typeDecl("Boolean", env.BooleanType)
	env.CharDecl = typeDecl("Char", env.CharType)
	env.IntegerDecl = typeDecl("Integer", env.IntegerType)

	constDecl := func(name string, t TypeDenoter, value int) *ConstDeclaration {
		d := New(b, &ConstDeclaration{
			Name: name,
			E:    &IntegerExpression{T: t, Value: value},
		})
		env.decls[name] = d
		return d
	}
	env.FalseDecl = constDecl("false", env.BooleanType, 0)
	env.TrueDecl = constDecl("true", env.BooleanType, 1)
	env.MaxintDecl = constDecl("maxint", env.IntegerType, 32767)

	unary := func(op string, arg, result TypeDenoter) *UnaryOperatorDeclaration {
		d := New(b, &UnaryOperatorDeclaration{Spelling: op, Arg: arg, Result: result})
		env.decls[op] = d
		return d
	}
	binary := func(op string, arg1, arg2, result TypeDenoter) *BinaryOperatorDeclaration {
		d := New(b, &BinaryOperatorDeclaration{Spelling: op, Arg1: arg1, Arg2: arg2, Result: result})
		env.decls[op] = d
		return d
	}
	boolT, intT, anyT := env.BooleanType, env.IntegerType, env.AnyType

	env.NotDecl = unary(`\`, boolT, boolT)
	env.AndDecl = binary(`/\`, boolT, boolT, boolT)
	env.OrDecl = binary(`\/`, boolT, boolT, boolT)
	env.AddDecl = binary("+", intT, intT, intT)
	env.SubtractDecl = binary("-", intT, intT, intT)
	env.MultiplyDecl = binary("*", intT, intT, intT)
	env.DivideDecl = binary("/", intT, intT, intT)
	env.ModuloDecl = binary("//", intT, intT, intT)
	env.LessDecl = binary("<", intT, intT, boolT)
	env.NotGreaterDecl = binary("<=", intT, intT, boolT)
	env.GreaterDecl = binary(">", intT, intT, boolT)
	env.NotLessDecl = binary(">=", intT, intT, boolT)
	env.LexLessDecl = binary("<<", anyT, anyT, boolT)
	env.EqualDecl = binary("=", anyT, anyT, boolT)
	env.UnequalDecl = binary(`\=`, anyT, anyT, boolT)

	formal := func(name string, t TypeDenoter) FormalParameter {
		return New(b, &ConstFormalParameter{Name: name, T: t})
	}
	varFormal := func(name string, t TypeDenoter) FormalParameter {
		return New(b, &VarFormalParameter{Name: name, T: t})
	}
	fn := func(name string, result TypeDenoter, formals ...FormalParameter) *FuncDeclaration {
		d := New(b, &FuncDeclaration{Name: name, Formals: formals, Result: result})
		env.decls[name] = d
		return d
	}
	proc := func(name string, formals ...FormalParameter) *ProcDeclaration {
		d := New(b, &ProcDeclaration{Name: name, Formals: formals})
		env.decls[name] = d
		return d
	}

	env.ChrDecl = fn("chr", env.CharType, formal("i", intT))
	env.OrdDecl = fn("ord", intT, formal("c", env.CharType))
	env.EolDecl = fn("eol", boolT)
	env.EofDecl = fn("eof", boolT)
	env.SuccDecl = fn("succ", intT, formal("i", intT))
	env.PredDecl = fn("pred", intT, formal("i", intT))
	env.GetDecl = proc("get", varFormal("c", env.CharType))
	env.PutDecl = proc("put", formal("c", env.CharType))
	env.GetintDecl = proc("getint", varFormal("i", intT))
	env.PutintDecl = proc("putint", formal("i", intT))
	env.GeteolDecl = proc("geteol")
	env.PuteolDecl = proc("puteol")

	return env
}

// Decl returns the standard declaration spelled name, or nil.
func (env *StdEnvironment) Decl(name string) Declaration {
	return env.decls[name]
}

// TypeNamed returns the primitive type denoter called name, or nil. The
// names are Boolean, Char, Integer, any, error and nil.
func (env *StdEnvironment) TypeNamed(name string) TypeDenoter {
	return env.types[name]
}

// NameOf returns the name n is registered under in env. isType reports
// whether it names a primitive type rather than a declaration.
func (env *StdEnvironment) NameOf(n Node) (name string, isType, ok bool) {
	for name, d := range env.decls {
		if Node(d) == n {
			return name, false, true
		}
	}
	for name, t := range env.types {
		if Node(t) == n {
			return name, true, true
		}
	}
	return "", false, false
}
