package ast

import "exactprint/internal/annot"

const (
	ShapeModule   annot.Shape = "Module"
	ShapeModName  annot.Shape = "ModName"
	ShapeImport   annot.Shape = "Import"
	ShapeBinds    annot.Shape = "Binds"
	ShapeSig      annot.Shape = "Sig"
	ShapeFunBind  annot.Shape = "FunBind"
	ShapeVar      annot.Shape = "Var"
	ShapeCon      annot.Shape = "Con"
	ShapeLit      annot.Shape = "Lit"
	ShapeWild     annot.Shape = "Wild"
	ShapeApp      annot.Shape = "App"
	ShapeOpApp    annot.Shape = "OpApp"
	ShapePar      annot.Shape = "Par"
	ShapeTuple    annot.Shape = "Tuple"
	ShapeList     annot.Shape = "List"
	ShapeLambda   annot.Shape = "Lambda"
	ShapeLet      annot.Shape = "Let"
	ShapeIf       annot.Shape = "If"
	ShapeDo       annot.Shape = "Do"
	ShapeCase     annot.Shape = "Case"
	ShapeAlt      annot.Shape = "Alt"
	ShapeBindStmt annot.Shape = "BindStmt"
	ShapeLetStmt  annot.Shape = "LetStmt"
	ShapeBodyStmt annot.Shape = "BodyStmt"
	ShapeConPat   annot.Shape = "ConPat"
	ShapeFunTy    annot.Shape = "FunTy"
	// ShapeWrap exists only after renaming and never prints.
	ShapeWrap annot.Shape = "Wrap"
)
