package executor

import (
	"testing"

	mdwerror "github.com/msto63/mlogo/foundation/core/error"
	"github.com/msto63/mlogo/foundation/turtle/language"
)

func stepDefinition() *language.FunctionDefinition {
	return &language.FunctionDefinition{
		Names: []string{"step"},
		Perform: func(s language.State, in language.Instruction) (language.Update, error) {
			next := s.Turtle
			next.X++
			return language.Update{
				Turtle:       &next,
				DrawCommands: []language.DrawCommand{language.Line(in.ID, s.Turtle.X, 0, next.X, 0)},
			}, nil
		},
	}
}

func TestPerform(t *testing.T) {
	def := stepDefinition()
	s := language.NewState(language.FunctionTable{def})

	update, err := Perform(s, language.Instruction{ID: 4, Definition: def})
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	if update.Turtle == nil || update.Turtle.X != 1 {
		t.Errorf("turtle = %+v", update.Turtle)
	}
	if len(update.DrawCommands) != 1 || update.DrawCommands[0].ID != 4 {
		t.Errorf("draw commands = %+v", update.DrawCommands)
	}
}

func TestPerform_NoPerformer(t *testing.T) {
	def := &language.FunctionDefinition{Names: []string{";"}}

	update, err := Perform(language.NewState(nil), language.Instruction{Definition: def})
	if err != nil {
		t.Fatalf("Perform() error = %v", err)
	}
	if update.Turtle != nil || update.Pen != nil || len(update.DrawCommands) != 0 {
		t.Errorf("expected empty update, got %+v", update)
	}
}

func TestPerform_RejectsForeignDrawCommands(t *testing.T) {
	def := &language.FunctionDefinition{
		Names: []string{"liar"},
		Perform: func(s language.State, in language.Instruction) (language.Update, error) {
			return language.Update{DrawCommands: []language.DrawCommand{language.Clear(in.ID + 1)}}, nil
		},
	}

	_, err := Perform(language.NewState(nil), language.Instruction{ID: 1, Definition: def})
	if !mdwerror.HasCode(err, mdwerror.CodeExecution) {
		t.Errorf("expected execution error, got %v", err)
	}
}

func TestRun(t *testing.T) {
	def := stepDefinition()
	s := language.NewState(language.FunctionTable{def})
	s.Turtle.X = 10

	instructions := []language.Instruction{
		{ID: 2, Definition: def},
		{ID: 2, Definition: def},
		{ID: 2, Definition: def},
	}

	update, err := Run(s, instructions)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if update.Turtle.X != 13 {
		t.Errorf("final x = %v, want 13", update.Turtle.X)
	}
	if len(update.DrawCommands) != 3 || update.DrawCommands[2].X1 != 12 {
		t.Errorf("draw commands = %+v", update.DrawCommands)
	}
	if !update.Pen.Down {
		t.Error("pen should be carried through")
	}
}
