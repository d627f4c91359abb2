package textproc

import "testing"

func assertContainsAll(t *testing.T, got map[string]struct{}, want []string) {
	t.Helper()
	for _, w := range want {
		if _, ok := got[w]; !ok {
			t.Errorf("tokens missing %q; got %v", w, keys(got))
		}
	}
}

func keys(m map[string]struct{}) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func TestTokenizeLowercasesAndSplitsOnWhitespace(t *testing.T) {
	got := Tokenize("ONE TWO THREE one two three")
	assertContainsAll(t, got, []string{"one", "two", "three"})
}

func TestTokenizeSplitsAlphanumeric(t *testing.T) {
	got := Tokenize("ONE1.TWO2.THREE3?")
	assertContainsAll(t, got, []string{"one1", "two2", "three3"})
}

func TestTokenizeUnionsAlphaAndNumericSplits(t *testing.T) {
	got := Tokenize("4th Dragoons March. JMT.077")
	assertContainsAll(t, got, []string{"4th", "4", "th", "dragoons", "march", "jmt", "077"})
}

func TestTokenizeStripsDiacritics(t *testing.T) {
	got := Tokenize("Réel de Montréal")
	assertContainsAll(t, got, []string{"reel", "de", "montreal"})
}
