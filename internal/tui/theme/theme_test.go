package theme

import "testing"

func TestByNameFallsBackToDefault(t *testing.T) {
	if got := ByName("light").Name; got != "light" {
		t.Fatalf("ByName(light) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != MyWallet.Name {
		t.Fatalf("ByName(unknown) = %q, want %q", got, MyWallet.Name)
	}
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { SetActive(MyWallet.Name) })

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}

func TestThemesAreComplete(t *testing.T) {
	for _, th := range All {
		for role, c := range map[string]string{
			"Background":   string(th.Background),
			"Surface":      string(th.Surface),
			"Border":       string(th.Border),
			"TextPrimary":  string(th.TextPrimary),
			"Accent":       string(th.Accent),
			"AccentBright": string(th.AccentBright),
			"Green":        string(th.Green),
			"Red":          string(th.Red),
		} {
			if c == "" {
				t.Fatalf("theme %s has no %s color", th.Name, role)
			}
		}
	}
}
