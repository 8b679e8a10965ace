package extractor_test

import (
	"strings"
	"testing"

	"github.com/raysh454/pagetext/internal/extractor"
)

func extract(t *testing.T, markup string) string {
	t.Helper()
	got, err := extractor.New().Extract(markup)
	if err != nil {
		t.Fatalf("Extract(%q): %v", markup, err)
	}
	return got
}

func TestExtract_Cases(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		markup string
		want   string
	}{
		{
			name:   "script removed and spaces collapsed",
			markup: `<html><body><script>x=1</script><p>Hello   world</p></body></html>`,
			want:   "Hello world",
		},
		{
			name:   "nav fragment",
			markup: `<nav>skip</nav><p>Keep  this</p>`,
			want:   "Keep this",
		},
		{
			name:   "empty markup",
			markup: "",
			want:   "",
		},
		{
			name:   "only denylisted tags",
			markup: `<script>a()</script><style>p{}</style><nav>n</nav><footer>f</footer><aside>a</aside>`,
			want:   "",
		},
		{
			name:   "nested denylisted subtrees",
			markup: `<aside><div><p>gone</p><nav><span>also gone</span></nav></div></aside><main><footer><style>x</style>bye</footer><p>stay</p></main>`,
			want:   "stay",
		},
		{
			name:   "tabs and newlines",
			markup: "<p>a \t\n b</p>\n\n<p>\n c \n</p>",
			want:   "a b c",
		},
		{
			name:   "adjacent text nodes get a separator",
			markup: `<p>one</p><p>two</p><span>three</span>`,
			want:   "one two three",
		},
		{
			name:   "comments are not text",
			markup: `<p>a<!-- hidden -->b</p>`,
			want:   "a b",
		},
		{
			name:   "title is text",
			markup: `<html><head><title>Title</title></head><body>Body</body></html>`,
			want:   "Title Body",
		},
		{
			name:   "noscript content is kept as text",
			markup: `<noscript><p>enable js</p></noscript>`,
			want:   "enable js",
		},
		{
			name:   "malformed markup",
			markup: `<p>unclosed <div>text <b>bold</i>`,
			want:   "unclosed text bold",
		},
		{
			name:   "entities decoded and nbsp collapsed",
			markup: `<p>a&amp;b&nbsp;&nbsp;c</p>`,
			want:   "a&b c",
		},
		{
			name:   "whitespace-only document",
			markup: " \n\t ",
			want:   "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := extract(t, tc.markup); got != tc.want {
				t.Errorf("Extract(%q) = %q, want %q", tc.markup, got, tc.want)
			}
		})
	}
}

func TestExtract_NoRepeatedOrEdgeWhitespace(t *testing.T) {
	t.Parallel()
	fragments := []string{
		"  lead", "trail  ", "\tmid\tdle\t", "\n\nlines\n\n", "x  y   z",
		"<b> bold </b>", "<script> s </script>", "<br>", "&nbsp;", "<nav>\n</nav>",
	}

	// Every ordered pair and triple of fragments wrapped in a paragraph.
	for _, a := range fragments {
		for _, b := range fragments {
			for _, c := range fragments {
				markup := "<p>" + a + "</p>" + b + "<div>" + c + "</div>"
				got := extract(t, markup)
				if strings.TrimSpace(got) != got {
					t.Fatalf("leading/trailing whitespace in %q (from %q)", got, markup)
				}
				if strings.Contains(got, "  ") || strings.ContainsAny(got, "\t\n\r") {
					t.Fatalf("uncollapsed whitespace in %q (from %q)", got, markup)
				}
				if strings.Contains(got, " s ") || got == "s" {
					t.Fatalf("script text leaked into %q", got)
				}
			}
		}
	}
}

func TestDenylist_IsFixedAndCopied(t *testing.T) {
	t.Parallel()
	got := extractor.Denylist()
	want := []string{"script", "style", "nav", "footer", "aside"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Denylist() = %v, want %v", got, want)
	}

	got[0] = "p"
	if extractor.Denylist()[0] != "script" {
		t.Error("mutating the returned slice changed the denylist")
	}
}
