package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Import reads a document and returns its plain text content. The
// format is detected from the file extension.
func Import(filePath string) (string, error) {
	format, err := Detect(filePath)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatText, FormatMarkdown:
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return CleanText(string(raw)), nil
	case FormatHTML:
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		return importHTML(raw)
	case FormatEPUB:
		return importEPUB(filePath)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func importHTML(raw []byte) (string, error) {
	baseURL, _ := url.Parse("file:///document.html")

	article, err := readability.FromReader(bytes.NewReader(raw), baseURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var rendered bytes.Buffer
	if err := article.RenderText(&rendered); err != nil {
		return "", fmt.Errorf("render readability text: %w", err)
	}

	text := CleanText(rendered.String())
	if text == "" {
		text = CleanText(article.Excerpt())
	}
	if text == "" {
		return "", fmt.Errorf("no readable content extracted")
	}
	return text, nil
}

func importEPUB(filePath string) (string, error) {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("open epub: %w", err)
	}
	defer archive.Close()

	chapters := chapterOrder(&archive.Reader)
	if len(chapters) == 0 {
		return "", fmt.Errorf("epub has no chapter documents")
	}

	parts := make([]string, 0, len(chapters))
	for _, file := range chapters {
		text, err := chapterText(file)
		if err != nil {
			return "", fmt.Errorf("epub chapter %s: %w", file.Name, err)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	text := CleanText(strings.Join(parts, "\n\n"))
	if text == "" {
		return "", fmt.Errorf("no readable content extracted")
	}
	return text, nil
}

// chapterOrder resolves the spine order from the OPF package document
// and falls back to name-sorted XHTML entries when the metadata is
// missing or broken.
func chapterOrder(archive *zip.Reader) []*zip.File {
	byName := make(map[string]*zip.File, len(archive.File))
	for _, file := range archive.File {
		byName[file.Name] = file
	}

	if spine := spineFiles(archive, byName); len(spine) > 0 {
		return spine
	}

	var chapters []*zip.File
	for _, file := range archive.File {
		if isChapterName(file.Name) {
			chapters = append(chapters, file)
		}
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Name < chapters[j].Name })
	return chapters
}

type epubContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

func spineFiles(archive *zip.Reader, byName map[string]*zip.File) []*zip.File {
	containerFile, ok := byName["META-INF/container.xml"]
	if !ok {
		return nil
	}

	var container epubContainer
	if err := decodeZipXML(containerFile, &container); err != nil || len(container.Rootfiles) == 0 {
		return nil
	}

	opfPath := container.Rootfiles[0].FullPath
	opfFile, ok := byName[opfPath]
	if !ok {
		return nil
	}

	var pkg epubPackage
	if err := decodeZipXML(opfFile, &pkg); err != nil {
		return nil
	}

	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		hrefs[item.ID] = item.Href
	}

	opfDir := path.Dir(opfPath)
	var files []*zip.File
	for _, ref := range pkg.Spine {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		name := href
		if opfDir != "." {
			name = path.Join(opfDir, href)
		}
		if file, ok := byName[name]; ok && isChapterName(name) {
			files = append(files, file)
		}
	}
	return files
}

func decodeZipXML(file *zip.File, v any) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return xml.NewDecoder(rc).Decode(v)
}

func isChapterName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xhtml") ||
		strings.HasSuffix(lower, ".html") ||
		strings.HasSuffix(lower, ".htm")
}

func chapterText(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style, nav, header, footer").Remove()

	var paragraphs []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, blockquote").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		if body := strings.TrimSpace(doc.Find("body").Text()); body != "" {
			paragraphs = append(paragraphs, body)
		}
	}

	return CleanText(strings.Join(paragraphs, "\n\n")), nil
}

// CleanText normalizes line endings and collapses extra in-line whitespace.
func CleanText(raw string) string {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	lines := strings.Split(normalized, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		clean := strings.Join(strings.Fields(strings.TrimSpace(line)), " ")
		if clean == "" {
			continue
		}
		paragraphs = append(paragraphs, clean)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}
