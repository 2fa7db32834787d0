// Package parser is the second pass over a token sequence: it splits tokens
// on the pipe operator into pipeline stages, then extracts per-stage
// redirection requests from the remaining words.
//
// Defined by the classic shell grammar
// (https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html):
// token recognition happens in the lexer; this package covers steps 3 and 5
// of that algorithm (parsing into simple commands, and redirection
// extraction) for the single-pipe-operator, no-expansion subset this shell
// supports. No compound commands, no expansions.
package parser

// Mode is a redirection's open disposition.
type Mode int

const (
	Truncate Mode = iota
	Append
)

// Redirection binds a standard descriptor to a target path for the
// duration of a stage.
type Redirection struct {
	Path string
	Mode Mode
}

// Stage is one pipeline position: a command and its arguments, plus any
// redirections extracted from it. Redirect is keyed by file descriptor (1
// or 2); at most one entry per fd survives extraction, the later operator
// winning when both are present.
type Stage struct {
	Words    []string
	Redirect map[int]Redirection
}

// Pipeline is an ordered, left-to-right sequence of stages.
type Pipeline []Stage

var operatorFd = map[string]int{
	">": 1, "1>": 1,
	">>": 1, "1>>": 1,
	"2>": 2, "2>>": 2,
}

var operatorMode = map[string]Mode{
	">": Truncate, "1>": Truncate,
	">>": Append, "1>>": Append,
	"2>": Truncate, "2>>": Append,
}

// Parse splits tokens on "|" into stages and extracts each stage's
// redirections. Leading, trailing, and consecutive "|" tokens produce no
// empty stages. A redirection operator that is the final token in a stage
// is left untouched (no filename followed it, so no request is recorded).
func Parse(tokens []string) Pipeline {
	var pipeline Pipeline
	for _, words := range splitPipes(tokens) {
		pipeline = append(pipeline, parseStage(words))
	}
	return pipeline
}

func splitPipes(tokens []string) [][]string {
	var stages [][]string
	var cur []string
	for _, tok := range tokens {
		if tok == "|" {
			if len(cur) > 0 {
				stages = append(stages, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		stages = append(stages, cur)
	}
	return stages
}

func parseStage(tokens []string) Stage {
	stage := Stage{Redirect: make(map[int]Redirection)}

	for i := 0; i < len(tokens); i++ {
		fd, isOp := operatorFd[tokens[i]]
		if !isOp {
			stage.Words = append(stage.Words, tokens[i])
			continue
		}
		if i+1 >= len(tokens) {
			// Trailing operator with no filename: left in place as an
			// ordinary word, effectively ignored by whatever runs the
			// stage. No redirection request is recorded.
			stage.Words = append(stage.Words, tokens[i])
			continue
		}
		stage.Redirect[fd] = Redirection{Path: tokens[i+1], Mode: operatorMode[tokens[i]]}
		i++ // consume the path token too
	}

	return stage
}
