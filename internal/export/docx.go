package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	timeSize  = 10
	timeColor = "666666"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
)

// TranscriptToDocx writes one paragraph per record: a grey time span, the
// speaker in bold, then the text.
func TranscriptToDocx(title string, records []caption.Record, outputPath string) error {
	if len(records) == 0 {
		return ErrEmptyTranscript
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	for _, r := range records {
		p := doc.AddParagraph("")
		span := fmt.Sprintf("%s – %s  ", r.Start.UTC().Format("15:04:05"), r.End.UTC().Format("15:04:05"))
		p.AddText(span).Font(fontName).Size(timeSize).Color(timeColor)
		p.AddText(strings.TrimSpace(r.Speaker) + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
		p.AddText(r.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

// MarkdownToDocx converts a markdown summary to a styled docx file.
func MarkdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		addRichText(doc.AddParagraph(""), trimmed)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
