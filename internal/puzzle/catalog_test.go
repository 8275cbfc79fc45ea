package puzzle_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/decompose/internal/puzzle"
)

func newTestCatalog(t *testing.T) *puzzle.Catalog {
	t.Helper()
	c, err := puzzle.NewCatalog(
		[]*puzzle.Pattern{square, pair, cross, hole, icicle},
		testDefs(),
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func TestCatalogQueries(t *testing.T) {
	c := newTestCatalog(t)

	if got := c.LevelCount(); got != 5 {
		t.Fatalf("LevelCount = %d, want 5", got)
	}

	w, h, err := c.LevelBoardSize(4)
	if err != nil || w != 8 || h != 8 {
		t.Errorf("LevelBoardSize(4) = %d, %d, %v; want 8, 8, nil", w, h, err)
	}

	allowed, err := c.LevelAllowedPatterns(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(allowed) != 2 || allowed[0] != square || allowed[1] != pair {
		t.Errorf("LevelAllowedPatterns(3) = %v", allowed)
	}

	if p, ok := c.Pattern("hole"); !ok || p != hole {
		t.Errorf("Pattern(hole) = %v, %v", p, ok)
	}
	if _, ok := c.Pattern("missing"); ok {
		t.Error("Pattern(missing) should not be found")
	}

	if got := c.IndexOf("pair"); got != 2 {
		t.Errorf("IndexOf(pair) = %d, want 2", got)
	}
	if got := c.IndexOf("nope"); got != -1 {
		t.Errorf("IndexOf(nope) = %d, want -1", got)
	}
}

func TestCatalogBadIndex(t *testing.T) {
	c := newTestCatalog(t)

	for _, i := range []int{-1, 5, 100} {
		if _, err := c.NewPlayBoard(i); !errors.Is(err, puzzle.ErrLevelNotFound) {
			t.Errorf("NewPlayBoard(%d) error = %v, want ErrLevelNotFound", i, err)
		}
		if _, _, err := c.LevelBoardSize(i); !errors.Is(err, puzzle.ErrLevelNotFound) {
			t.Errorf("LevelBoardSize(%d) error = %v, want ErrLevelNotFound", i, err)
		}
		if _, err := c.LevelAllowedPatterns(i); !errors.Is(err, puzzle.ErrLevelNotFound) {
			t.Errorf("LevelAllowedPatterns(%d) error = %v, want ErrLevelNotFound", i, err)
		}
	}
}

func TestCatalogPlayBoardsAreIndependent(t *testing.T) {
	c := newTestCatalog(t)

	a, _ := c.NewPlayBoard(0)
	b, _ := c.NewPlayBoard(0)

	a.Apply(square, 1, 1)
	if !a.IsCleared() {
		t.Fatal("expected first board cleared")
	}
	if b.IsCleared() {
		t.Error("second board should not see the first board's clicks")
	}
}

func TestNewCatalogErrors(t *testing.T) {
	testCases := []struct {
		name     string
		patterns []*puzzle.Pattern
		defs     []puzzle.LevelDef
		code     string
	}{
		{
			name:     "no levels",
			patterns: []*puzzle.Pattern{square},
			code:     puzzle.CodeEmptyCatalog,
		},
		{
			name:     "duplicate pattern",
			patterns: []*puzzle.Pattern{square, puzzle.MustPattern("square", []string{"#"}, 0, 0)},
			defs:     testDefs()[:1],
			code:     puzzle.CodeDuplicateID,
		},
		{
			name:     "duplicate level",
			patterns: []*puzzle.Pattern{square},
			defs:     []puzzle.LevelDef{testDefs()[0], testDefs()[0]},
			code:     puzzle.CodeDuplicateID,
		},
		{
			name:     "broken level",
			patterns: []*puzzle.Pattern{square},
			defs: []puzzle.LevelDef{{ID: "bad", Width: 2, Height: 2,
				Patterns: []*puzzle.Pattern{square},
				Recipe:   steps([3]int{1, 1, 0})}},
			code: puzzle.CodeInvalidStep,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := puzzle.NewCatalog(tc.patterns, tc.defs)
			var ce *puzzle.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ce.Code != tc.code {
				t.Errorf("code = %s, want %s", ce.Code, tc.code)
			}
			if !puzzle.IsConfigError(err) {
				t.Error("IsConfigError should be true")
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &puzzle.ConfigError{Code: puzzle.CodeInvalidStep, Level: "l3", Message: "step 2 off board"}
	if got, want := err.Error(), "[INVALID_STEP] level l3: step 2 off board"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &puzzle.ConfigError{Code: puzzle.CodeEmptyCatalog, Message: "catalog has no levels"}
	if got, want := err.Error(), "[EMPTY_CATALOG] catalog has no levels"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
