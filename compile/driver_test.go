package compile

import "testing"

func compileOnePage(t *testing.T, cfg Config, src string) *Sco {
	t.Helper()
	c := NewContext(cfg, nil, []string{"A.ADV"}, nil)
	if err := c.Preprocess(src, 0); err != nil {
		t.Fatalf("Preprocess: %v", err)
	}
	c.PreprocessDone()
	sco, err := c.Compile(src, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return sco
}

func TestCompileSimpleCommand(t *testing.T) {
	sco := compileOnePage(t, DefaultConfig(), "ZB1:")
	if sco.Buf.Len() == 0 {
		t.Fatal("expected non-empty compiled output")
	}
	if int(sco.Buf.CurrentAddress()) != sco.Buf.Len() {
		t.Errorf("CurrentAddress = %d, want %d", sco.Buf.CurrentAddress(), sco.Buf.Len())
	}
}

func TestCompileLabelAndJump(t *testing.T) {
	// Forward reference followed by its definition; both passes must agree
	// on the label's resolved address.
	sco := compileOnePage(t, DefaultConfig(), "@L_top:*L_top:A")
	if sco.Buf.Len() == 0 {
		t.Fatal("expected non-empty compiled output")
	}
}

func TestPreprocessRejectsTrailingGarbage(t *testing.T) {
	cfg := DefaultConfig()
	c := NewContext(cfg, nil, []string{"A.ADV"}, nil)
	if err := c.Preprocess("ZB1:~", 0); err == nil {
		t.Fatal("expected an error for unparsed trailing input")
	}
}

func TestCompileUnicodeDirectiveOnlyOnPageZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Unicode = true
	c := NewContext(cfg, nil, []string{"A.ADV", "B.ADV"}, nil)
	for i, src := range []string{"ZB1:", "ZB1:"} {
		if err := c.Preprocess(src, i); err != nil {
			t.Fatalf("Preprocess page %d: %v", i, err)
		}
	}
	c.PreprocessDone()
	first, err := c.Compile("ZB1:", 0)
	if err != nil {
		t.Fatalf("Compile page 0: %v", err)
	}
	second, err := c.Compile("ZB1:", 1)
	if err != nil {
		t.Fatalf("Compile page 1: %v", err)
	}
	if second.Buf.Len() >= first.Buf.Len() {
		t.Errorf("page 1 (no ZU directive) should be shorter than page 0: got %d and %d",
			second.Buf.Len(), first.Buf.Len())
	}
}
