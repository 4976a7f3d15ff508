package cover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// 3:4 竖版，小红书推荐封面尺寸
const (
	coverWidth  = 1080
	coverHeight = 1440
)

// hexColor 解析 #RRGGBB，非法输入退化为白色
func hexColor(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// gradientBackground 从上到下的线性渐变
func gradientBackground(w, h int, colors []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	top := hexColor(colors[0])
	bottom := top
	if len(colors) > 1 {
		bottom = hexColor(colors[len(colors)-1])
	}
	for y := 0; y < h; y++ {
		ratio := float64(y) / float64(h)
		c := color.RGBA{
			R: uint8(float64(top.R) + (float64(bottom.R)-float64(top.R))*ratio),
			G: uint8(float64(top.G) + (float64(bottom.G)-float64(top.G))*ratio),
			B: uint8(float64(top.B) + (float64(bottom.B)-float64(top.B))*ratio),
			A: 255,
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func solidBackground(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// blendPixel 按 alpha 把颜色叠加到目标像素上
func blendPixel(img *image.RGBA, x, y int, c color.RGBA, alpha uint8) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(alpha) / 255
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(c.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(c.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(c.B)*a + float64(dst.B)*(1-a)),
		A: 255,
	})
}

func drawCircle(img *image.RGBA, deco Circle) {
	cx := int(deco.X * float64(img.Bounds().Dx()))
	cy := int(deco.Y * float64(img.Bounds().Dy()))
	c := hexColor(deco.Color)
	r := deco.Radius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				blendPixel(img, cx+dx, cy+dy, c, deco.Alpha)
			}
		}
	}
}

func drawLine(img *image.RGBA, deco Line) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	x := int(deco.X * float64(w))
	y := int(deco.Y * float64(h))
	lineWidth := int(deco.Width * float64(w))
	c := hexColor(deco.Color)
	for dy := 0; dy < deco.Height; dy++ {
		for dx := 0; dx < lineWidth; dx++ {
			blendPixel(img, x+dx, y+dy, c, 255)
		}
	}
}

// measureText 返回文本渲染宽度（像素）
func measureText(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// wrapText 按渲染宽度逐字换行
// 中文没有空格分词，按字累积测量比按词拆分更可靠
func wrapText(text string, face font.Face, maxWidth int) []string {
	var lines []string
	current := ""
	for _, r := range text {
		candidate := current + string(r)
		if measureText(face, candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// drawCenteredText 以 centerX 水平居中绘制一行文字，y 为基线
func drawCenteredText(img *image.RGBA, face font.Face, text string, centerX, baselineY int, c color.RGBA) {
	width := measureText(face, text)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(centerX-width/2, baselineY),
	}
	d.DrawString(text)
}

// drawText 以左对齐绘制一行文字，y 为基线
func drawText(img *image.RGBA, face font.Face, text string, x, baselineY int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baselineY),
	}
	d.DrawString(text)
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("失败: 创建图片文件 - %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("失败: 编码 PNG - %w", err)
	}
	return nil
}

// GenerateCover 按模板本地渲染一张封面图
func GenerateCover(title, subtitle, templateName string) (string, error) {
	tpl, err := LookupTemplate(templateName)
	if err != nil {
		return "", err
	}

	var img *image.RGBA
	if len(tpl.BGGradient) > 0 {
		img = gradientBackground(coverWidth, coverHeight, tpl.BGGradient)
	} else {
		img = solidBackground(coverWidth, coverHeight, hexColor(tpl.BGColor))
	}

	for _, c := range tpl.Circles {
		drawCircle(img, c)
	}
	for _, l := range tpl.Lines {
		drawLine(img, l)
	}

	titleFace, err := LoadFont(tpl.TitleSize)
	if err != nil {
		return "", err
	}
	defer titleFace.Close()

	titleLines := wrapText(title, titleFace, int(float64(coverWidth)*0.8))
	lineHeight := int(tpl.TitleSize * 1.2)
	startY := int(tpl.TitleY*coverHeight) - len(titleLines)*lineHeight/2
	titleColor := hexColor(tpl.TitleColor)
	for i, line := range titleLines {
		drawCenteredText(img, titleFace, line, coverWidth/2, startY+i*lineHeight, titleColor)
	}

	if subtitle != "" {
		subFace, err := LoadFont(tpl.SubtitleSize)
		if err == nil {
			drawCenteredText(img, subFace, subtitle, coverWidth/2,
				int(tpl.SubtitleY*coverHeight), hexColor(tpl.SubtitleColor))
			subFace.Close()
		}
	}

	path := filepath.Join(
		config.Config.ContentPath,
		fmt.Sprintf("cover_%s_%s.png", tpl.ID, time.Now().Format("20060102_150405")),
	)
	if err := savePNG(img, path); err != nil {
		return "", err
	}
	utils.Info(fmt.Sprintf("封面已生成 [模板: %s]: %s", tpl.Name, path))
	return path, nil
}

// DefaultCover 生成兜底封面
// 固定文件名，已存在时直接复用
func DefaultCover(title string) (string, error) {
	path := filepath.Join(config.Config.ContentPath, "default_cover.png")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	img := solidBackground(coverWidth, coverHeight, color.RGBA{R: 255, G: 240, B: 245, A: 255})

	if title != "" {
		face, err := LoadFont(48)
		if err != nil {
			return "", err
		}
		defer face.Close()
		r := []rune(title)
		if len(r) > 15 {
			r = r[:15]
		}
		drawCenteredText(img, face, string(r), coverWidth/2, 600, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	}

	if err := savePNG(img, path); err != nil {
		return "", err
	}
	utils.Info(fmt.Sprintf("默认封面已生成: %s", path))
	return path, nil
}
