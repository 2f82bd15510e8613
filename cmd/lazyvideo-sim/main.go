// Command lazyvideo-sim loads an HTML document, attaches lazyvideo to
// it, and executes scenario commands from stdin: scrolling the viewport,
// hovering elements, hiding the page, and mutating attributes, printing
// the resulting element states.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spurwing-main/lazyloadvideo/dom"
	"github.com/spurwing-main/lazyloadvideo/html"
	"github.com/spurwing-main/lazyloadvideo/lazyvideo"
	"github.com/spurwing-main/lazyloadvideo/script"
)

func main() {
	var (
		file     = flag.String("file", "", "HTML document to load")
		width    = flag.Float64("width", 1280, "viewport width")
		height   = flag.Float64("height", 720, "viewport height")
		debug    = flag.Bool("debug", false, "enable debug diagnostics")
		autoplay = flag.Bool("allow-autoplay", true, "grant unmuted play requests")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -file=page.html [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nScenario commands on stdin:\n")
		fmt.Fprintf(os.Stderr, "  scroll <y>            move the viewport\n")
		fmt.Fprintf(os.Stderr, "  hover <sel>           dispatch mouseenter\n")
		fmt.Fprintf(os.Stderr, "  unhover <sel>         dispatch mouseleave\n")
		fmt.Fprintf(os.Stderr, "  hide | show           page visibility\n")
		fmt.Fprintf(os.Stderr, "  set <sel> <attr> <v>  set an attribute\n")
		fmt.Fprintf(os.Stderr, "  unset <sel> <attr>    remove an attribute\n")
		fmt.Fprintf(os.Stderr, "  rect <sel> <x> <y> <w> <h>  place an element\n")
		fmt.Fprintf(os.Stderr, "  eval <js>             run a script statement\n")
		fmt.Fprintf(os.Stderr, "  state <sel>           print element state\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*file, *width, *height, *debug, *autoplay, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(file string, width, height float64, debug, allowAutoplay bool, logger *slog.Logger) error {
	doc, err := html.ParseFile(file)
	if err != nil {
		return err
	}
	doc.SetViewport(dom.Rect{Width: width, Height: height})
	if !allowAutoplay {
		doc.SetAutoplayPolicy(func(v *dom.VideoElement) error {
			if !v.Muted() {
				return fmt.Errorf("autoplay of unmuted media denied")
			}
			return nil
		})
	}

	lv := lazyvideo.New(doc, lazyvideo.WithLogger(logger), lazyvideo.WithDebug(debug))
	defer lv.Close()

	handles := lv.AttachAll(nil)
	fmt.Printf("attached %d element(s)\n", len(handles))
	doc.UpdateIntersections()
	doc.Flush()

	js := script.New(doc, lv)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := execute(doc, js, line); err != nil {
			fmt.Fprintf(os.Stderr, "  %v\n", err)
			continue
		}
		// Deliver everything the command produced before reading the
		// next one.
		doc.UpdateIntersections()
		doc.Flush()
	}
	return scanner.Err()
}

func execute(doc *dom.Document, js *script.Runtime, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "scroll":
		if len(args) != 1 {
			return fmt.Errorf("usage: scroll <y>")
		}
		y, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("bad scroll offset %q", args[0])
		}
		doc.ScrollTo(0, y)
	case "hover", "unhover":
		el, err := selectOne(doc, args, 1)
		if err != nil {
			return err
		}
		if cmd == "hover" {
			el.DispatchEvent(dom.EventMouseEnter)
		} else {
			el.DispatchEvent(dom.EventMouseLeave)
		}
	case "hide":
		doc.SetHidden(true)
	case "show":
		doc.SetHidden(false)
	case "set":
		el, err := selectOne(doc, args, 3)
		if err != nil {
			return err
		}
		el.SetAttribute(args[1], args[2])
	case "unset":
		el, err := selectOne(doc, args, 2)
		if err != nil {
			return err
		}
		el.RemoveAttribute(args[1])
	case "rect":
		el, err := selectOne(doc, args, 5)
		if err != nil {
			return err
		}
		var vals [4]float64
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil {
				return fmt.Errorf("bad rect value %q", args[i+1])
			}
			vals[i] = v
		}
		el.SetRect(dom.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]})
	case "eval":
		if len(args) == 0 {
			return fmt.Errorf("usage: eval <js>")
		}
		v, err := js.Run(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("  => %v\n", v)
	case "state":
		el, err := selectOne(doc, args, 1)
		if err != nil {
			return err
		}
		printState(el)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func selectOne(doc *dom.Document, args []string, want int) (*dom.Element, error) {
	if len(args) < want {
		return nil, fmt.Errorf("missing arguments")
	}
	el := doc.QuerySelector(args[0])
	if el == nil {
		return nil, fmt.Errorf("no element matches %q", args[0])
	}
	return el, nil
}

func printState(el *dom.Element) {
	v := el.AsVideo()
	if v == nil {
		fmt.Printf("  %s (not a video)\n", el.LocalName())
		return
	}
	fmt.Printf("  src=%q preload=%q muted=%t paused=%t loads=%d plays=%d\n",
		v.CurrentSrc(), v.Preload(), v.Muted(), v.Paused(), v.LoadCount(), v.PlayRequests())
}
