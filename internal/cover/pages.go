package cover

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"golang.org/x/image/font"
)

// 文字图片排版参数
// 编辑器放不下的正文渲染成竖版图片附在笔记后面
const (
	pageMargin     = 80
	pageBodySize   = 34.0
	pageTitleSize  = 44.0
	pageFooterSize = 24.0
	pageHeaderY    = 110
	pageBodyTop    = 200
	pageBodyBottom = 1320
	pageLineHeight = 58
)

// RenderTextPages 把溢出正文渲染成若干张文字图片
// 超过 maxPages 的内容被丢弃并记录警告
func RenderTextPages(text, title string, maxPages int) ([]string, error) {
	if strings.TrimSpace(text) == "" || maxPages <= 0 {
		return nil, nil
	}

	bodyFace, err := LoadFont(pageBodySize)
	if err != nil {
		return nil, err
	}
	defer bodyFace.Close()

	lines := layoutLines(text, bodyFace, coverWidth-2*pageMargin)
	perPage := (pageBodyBottom - pageBodyTop) / pageLineHeight
	pages := paginate(lines, perPage)

	if len(pages) > maxPages {
		utils.Warn(fmt.Sprintf("溢出正文需要 %d 页，超过上限 %d 页，多余内容被丢弃", len(pages), maxPages))
		pages = pages[:maxPages]
	}

	titleFace, err := LoadFont(pageTitleSize)
	if err != nil {
		return nil, err
	}
	defer titleFace.Close()
	footerFace, err := LoadFont(pageFooterSize)
	if err != nil {
		return nil, err
	}
	defer footerFace.Close()

	ts := time.Now().Format("20060102_150405")
	paths := make([]string, 0, len(pages))
	for i, pageLines := range pages {
		img := solidBackground(coverWidth, coverHeight, color.RGBA{R: 255, G: 251, B: 245, A: 255})

		header := []rune(title)
		if len(header) > 16 {
			header = header[:16]
		}
		drawCenteredText(img, titleFace, string(header), coverWidth/2, pageHeaderY,
			color.RGBA{R: 45, G: 55, B: 72, A: 255})
		drawLine(img, Line{X: 0.1, Y: 0.1, Width: 0.8, Height: 2, Color: "#E2E8F0"})

		bodyColor := color.RGBA{R: 74, G: 85, B: 104, A: 255}
		for j, line := range pageLines {
			drawText(img, bodyFace, line, pageMargin, pageBodyTop+j*pageLineHeight, bodyColor)
		}

		footer := fmt.Sprintf("第 %d/%d 页", i+1, len(pages))
		drawCenteredText(img, footerFace, footer, coverWidth/2, coverHeight-40,
			color.RGBA{R: 160, G: 174, B: 192, A: 255})

		// 合规：文字图片同样带 AI 标识
		if err := drawWatermark(img); err != nil {
			utils.Warn(fmt.Sprintf("文字图片水印添加失败（不影响发布）: %v", err))
		}

		path := filepath.Join(config.Config.ContentPath, fmt.Sprintf("text_page_%d_%s.png", i+1, ts))
		if err := savePNG(img, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	utils.Info(fmt.Sprintf("溢出正文已渲染为 %d 张文字图片", len(paths)))
	return paths, nil
}

// layoutLines 把正文按段落拆行并换行，空行保留为段间距
func layoutLines(text string, face font.Face, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(strings.TrimSpace(text), "\n") {
		para = strings.TrimRight(para, " \t")
		if para == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wrapText(para, face, maxWidth)...)
	}
	return lines
}

// paginate 把行列表切成固定大小的页
func paginate(lines []string, perPage int) [][]string {
	if perPage <= 0 || len(lines) == 0 {
		return nil
	}
	var pages [][]string
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	return pages
}
