package core

import (
	"context"
	"testing"
)

func TestMessageVariants(t *testing.T) {
	r := &Record{Level: LevelInfo, Tag: "app", Message: "hello"}
	msgs := []Message{NewRecordMessage(r), Drop{}, Done{}}

	var records, drops, dones int
	for _, m := range msgs {
		switch m := m.(type) {
		case RecordMessage:
			records++
			if m.Record != r {
				t.Error("record pointer not preserved")
			}
		case Drop:
			drops++
		case Done:
			dones++
		}
	}
	if records != 1 || drops != 1 || dones != 1 {
		t.Errorf("got records=%d drops=%d dones=%d", records, drops, dones)
	}
}

func TestNodeFunc(t *testing.T) {
	var seen Message
	n := NodeFunc(func(_ context.Context, m Message) (Message, error) {
		seen = m
		return Drop{}, nil
	})

	out, err := n.Process(context.Background(), Done{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := seen.(Done); !ok {
		t.Errorf("func saw %T, want Done", seen)
	}
	if _, ok := out.(Drop); !ok {
		t.Errorf("got %T, want Drop", out)
	}
}
