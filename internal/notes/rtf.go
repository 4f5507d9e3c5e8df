package notes

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	rtfBoldStarRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	rtfBoldUnderRe  = regexp.MustCompile(`__(.*?)__`)
	rtfItalicStarRe = regexp.MustCompile(`\*(.*?)\*`)
	rtfItalicUndRe  = regexp.MustCompile(`_(.*?)_`)
	rtfImageRe      = regexp.MustCompile(`!\[.*?\]\((.*?\..*?)\)`)
)

// renderRTF converts the Markdown document line by line into RTF. Headings
// map to decreasing font sizes, inline emphasis to RTF control words, and
// embedded screenshots are inlined as hex-encoded JPEG picts. Image paths are
// resolved relative to the Markdown file.
func (n *implNotes) renderRTF(markdownPath, outputPath string) error {
	markdown, err := os.ReadFile(markdownPath)
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	var rtf strings.Builder
	rtf.WriteString("{\\rtf1\\ansi\\deff0 {\\fonttbl {\\f0 Verdana;}}\n")

	for _, line := range strings.Split(string(markdown), "\n") {
		line = strings.TrimLeft(line, " \t")

		switch {
		case strings.HasPrefix(line, "# "):
			rtf.WriteString(fmt.Sprintf("{\\par\n\\par\n\\fs36 %s}\\par\n", line[2:]))
		case strings.HasPrefix(line, "## "):
			rtf.WriteString(fmt.Sprintf("{\\par\n\\par\n\\fs32 %s}\\par\n", line[3:]))
		case strings.HasPrefix(line, "### "):
			rtf.WriteString(fmt.Sprintf("{\\par\n\\par\n\\fs28 %s}\\par\n", line[4:]))
		case strings.HasPrefix(line, "#### "):
			rtf.WriteString(fmt.Sprintf("{\\par\n\\par\n\\fs24 %s}\\par\n", line[5:]))
		case strings.HasPrefix(line, "* "):
			rtf.WriteString(fmt.Sprintf("{\\par\n\\par\n\\f0\\'95 %s}\n", line[2:]))
		case line == "":
			rtf.WriteString("\\par\n")
		case strings.HasPrefix(line, "- "):
			rtf.WriteString(`\bullet  ` + strings.TrimSpace(line[2:]) + "\\par\n")
		default:
			line = rtfBoldStarRe.ReplaceAllString(line, "{\\b $1}\\b0")
			line = rtfBoldUnderRe.ReplaceAllString(line, "{\\b $1}\\b0")
			line = rtfItalicStarRe.ReplaceAllString(line, "{\\i $1}\\i0")
			line = rtfItalicUndRe.ReplaceAllString(line, "{\\i $1}\\i0")

			for _, m := range rtfImageRe.FindAllStringSubmatch(line, -1) {
				imagePath := filepath.Join(filepath.Dir(markdownPath), m[1])
				pict, err := rtfPicture(imagePath)
				if err != nil {
					line = strings.Replace(line, m[0], "", 1)
					continue
				}
				line = strings.Replace(line, m[0], pict, 1)
			}

			rtf.WriteString(line + "\n")
		}
	}

	rtf.WriteString("}")
	return os.WriteFile(outputPath, []byte(rtf.String()), 0644)
}

// rtfPicture hex-encodes a JPEG and sizes it in twips at 35% scale.
func rtfPicture(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", err
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	const scale = 0.35
	width := int(float64(cfg.Width) * 15 * scale)
	height := int(float64(cfg.Height) * 15 * scale)

	return fmt.Sprintf("\\par{\\pict\\jpegblip\\picw%d\\pich%d\\picwgoal%d\\pichgoal%d %s}\\par\n",
		width, height, width, height, hex.EncodeToString(data)), nil
}
