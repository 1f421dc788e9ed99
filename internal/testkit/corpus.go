package testkit

// Case is a named source that must survive every pass unchanged.
type Case struct {
	Name string
	Src  string
}

// Corpus covers the layout, comment and token forms of the reference
// language. Every entry parses without errors.
var Corpus = []Case{
	{"simple", "f x = x + 1\n"},
	{"module header", "module Main where\n\nimport qualified Data.Map as M\nimport Data.List\n\nmain :: IO ()\nmain = print (M.size m)\n"},
	{"comments", "-- header\n{- block\n   comment -}\nf = 1 -- trailing\n\n-- before g\ng = f  {- inline -}  + 2\n"},
	{"do block", "main = do\n  line <- getLine\n  let n = length line\n      m = n * 2\n  if n > 3\n    then putStrLn \"long\"\n    else print m\n"},
	{"explicit braces", "f = do { a; b ;\n       c }\n"},
	{"signature after binding", "f = g\n  where\n    g = 1\n    g :: Int\n"},
	{"where", "area r = pi * sq r\n  where\n    sq x = x * x\n    pi :: Double\n    pi = 3.14\n"},
	{"case", "describe n = case n of\n  0 -> \"zero\"\n  _ -> \"many\"\n"},
	{"lambda and lists", "apply = map (\\x -> x * 2) [1, 2, 3]\npairs = zip xs ys\n  where\n    xs = [1]\n    ys = [(1, 'a')]\n"},
	{"unicode glyphs", "f ∷ Int → Int\nf x = x\n"},
	{"same line block", "main = do print 1\n          print 2\n"},
	{"if aligned in do", "f = do\n  if c\n  then a\n  else b\n"},
	{"nested case", "f x = case x of\n  Just y -> case y of\n    0 -> 1\n    _ -> 2\n  Nothing -> 0\n"},
	{"no trailing newline", "x = 1"},
	{"blank lines", "\n\nf = 1\n\n\n\ng = 2\n\n"},
	{"pragma", "{-# LANGUAGE LambdaCase #-}\nmodule M where\nf = 1\n"},
	{"tuples and unit", "swap (a, b) = (b, a)\nunit = ()\npair = (,) 1 2\n"},
	{"operator names", "(<+>) :: Int -> Int -> Int\n(<+>) a b = a + b\n"},
	{"let expression", "f = let y = 1\n        z = 2\n    in y + z\n"},
	{"strings and chars", "s = \"a \\\"quoted\\\" string\"\nc = '\\n'\n"},
	{"comment at end", "f = 1\n-- the end\n"},
	{"explicit module body", "module M where {\n  import X ;\n  f = 1 ;\n  g = 2\n}\n"},
	{"long list", "f = [a, b, c, d]\n"},
	{"multi-line tuple", "f = (a, b,\n  c)\n"},
	{"explicit block", "f = do { a; b; c }\n"},
	{"list of lists", "m = [[1, 2], [3], []]\n"},
	{"tabs", "f x = x\t+ 1\ng = do\n\tprint 1\n\tprint 2\n"},
	{"trailing whitespace", "f x = x + 1   \ng = 2 -- c  \n\t\n"},
}
