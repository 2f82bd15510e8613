package html

import "testing"

const page = `<!DOCTYPE html>
<html>
<body>
  <div class="card">
    <video data-lazyvideo data-lazyvideo-play="visible hover" data-src="clip.mp4">
      <source data-src="clip.webm" type="video/webm">
    </video>
  </div>
  <video id="plain"></video>
</body>
</html>`

func TestParseString(t *testing.T) {
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	root := doc.DocumentElement()
	if root == nil || root.LocalName() != "html" {
		t.Fatal("Expected html root element")
	}

	video := doc.QuerySelector("[data-lazyvideo]")
	if video == nil {
		t.Fatal("Marked video not found")
	}
	if video.LocalName() != "video" {
		t.Errorf("Expected video element, got %s", video.LocalName())
	}
	if got := video.GetAttribute("data-src"); got != "clip.mp4" {
		t.Errorf("Expected data-src 'clip.mp4', got %q", got)
	}
	if got := video.GetAttribute("data-lazyvideo-play"); got != "visible hover" {
		t.Errorf("Trigger list not preserved, got %q", got)
	}

	source := video.QuerySelector("source")
	if source == nil {
		t.Fatal("Source descriptor not parsed")
	}
	if got := source.GetAttribute("data-src"); got != "clip.webm" {
		t.Errorf("Expected descriptor data-src 'clip.webm', got %q", got)
	}

	if doc.QuerySelector("#plain") == nil {
		t.Error("Second video not found")
	}
}

func TestParseString_ElementsAreConnected(t *testing.T) {
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	video := doc.QuerySelector("video")
	if video == nil {
		t.Fatal("Video not found")
	}
	if !video.AsNode().IsConnected() {
		t.Error("Parsed elements should be connected to the document")
	}
	if video.Closest(".card") == nil {
		t.Error("Ancestry not preserved by the parser")
	}
}

func TestParseString_TextContent(t *testing.T) {
	doc, err := ParseString("<html><body><p>hello world</p></body></html>")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	p := doc.QuerySelector("p")
	if p == nil {
		t.Fatal("Paragraph not found")
	}
	if got := p.AsNode().TextContent(); got != "hello world" {
		t.Errorf("Expected 'hello world', got %q", got)
	}
}

func TestParseString_MalformedInputStillParses(t *testing.T) {
	// The underlying parser error-corrects like a browser.
	doc, err := ParseString("<video data-lazyvideo><div></video>")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if doc.QuerySelector("video") == nil {
		t.Error("Error-corrected tree should still contain the video")
	}
}
