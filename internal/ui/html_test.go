package ui

import (
	"bytes"
	"testing"

	"golang.org/x/net/html"
)

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		t.Fatalf("html.Render() error = %v", err)
	}
	return buf.String()
}

func TestNodeEscapesText(t *testing.T) {
	root := NewElement("div")
	root.ID = "main"
	root.Class = `a"b`
	root.Append(NewText("td", "Tom & <b>"))

	got := render(t, root.Node(nil))
	want := `<div id="main" class="a&#34;b"><td>Tom &amp; &lt;b&gt;</td></div>`
	if got != want {
		t.Errorf("Node() rendered %q, want %q", got, want)
	}
}

func TestNodeReplacesCanvas(t *testing.T) {
	host := NewElement("div")
	host.SetStyle("width", "200px")
	EnsureCanvas(host, 50)

	got := render(t, host.Node(func(canvas *Element) *html.Node {
		return NewNode("img", append(canvas.Attrs(), html.Attribute{Key: "alt", Val: "chart"})...)
	}))
	want := `<div style="width: 200px;"><img style="height: 50px; width: 100%;" alt="chart"/></div>`
	if got != want {
		t.Errorf("Node() rendered %q, want %q", got, want)
	}

	got = render(t, host.Node(func(*Element) *html.Node { return nil }))
	want = `<div style="width: 200px;"><canvas style="height: 50px; width: 100%;"></canvas></div>`
	if got != want {
		t.Errorf("Node() with a nil replacement rendered %q, want %q", got, want)
	}
}
