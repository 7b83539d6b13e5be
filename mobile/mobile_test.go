package mobile

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLegalMoves(t *testing.T) {
	var boards []string
	if err := json.Unmarshal([]byte(LegalMoves("---w/w-w/bb/b-w/---b", "w")), &boards); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(boards) != 3 || boards[2] != "---w/w-w/bb/b--/--wb" {
		t.Fatalf("boards = %v", boards)
	}
	if got := LegalMoves("nonsense", "w"); !strings.Contains(got, `"error"`) {
		t.Fatalf("expected an error object, got %s", got)
	}
}

func TestBestMove(t *testing.T) {
	var out bestMove
	if err := json.Unmarshal([]byte(BestMove("---w/w-w/bb/b-w/---b", "w", 1)), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Status != "moved" || out.Board != "---w/w-w/bb/b--/--wb" || out.Move == nil || out.Score != 1 {
		t.Fatalf("unexpected %+v", out)
	}

	if err := json.Unmarshal([]byte(BestMove("----/---/--/---/w--w", "w", 0)), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Status != "stalled" {
		t.Fatalf("status %s", out.Status)
	}
	if got := BestMove("wwww/---/--/---/bbbb", "red", 1); !strings.Contains(got, `"error"`) {
		t.Fatalf("expected an error object, got %s", got)
	}
}
