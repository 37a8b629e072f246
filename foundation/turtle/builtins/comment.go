package builtins

import (
	"github.com/msto63/mlogo/foundation/turtle/language"
	"github.com/msto63/mlogo/foundation/turtle/token"
)

// Comment swallows every token up to and including the next newline
var Comment = &language.FunctionDefinition{
	Names:       []string{";"},
	Description: "Comment until end of line",
	ParseToken: func(_ language.State, in language.Instruction, tok token.Token) (language.Instruction, error) {
		if tok.IsNewline() {
			in.IsComplete = true
			return in, nil
		}
		text, _ := in.Extra.(string)
		in.Extra = text + tok.Text
		return in, nil
	},
}

// CommentText returns the text collected by a comment instruction
func CommentText(in language.Instruction) string {
	text, _ := in.Extra.(string)
	return text
}
