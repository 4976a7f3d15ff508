package cover

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"os"
)

// AI 内容标识（合规要求：水印高度不低于最短边 5%）
const watermarkText = "AI生成"

// AddAIWatermark 给图片右下角加 "AI生成" 水印，原地覆盖保存
func AddAIWatermark(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("失败: 打开图片 - %w", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("失败: 解码图片 - %w", err)
	}

	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	if err := drawWatermark(img); err != nil {
		return err
	}
	return savePNG(img, path)
}

// drawWatermark 在右下角绘制半透明底的水印文字
func drawWatermark(img *image.RGBA) error {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	minSide := w
	if h < minSide {
		minSide = h
	}
	fontSize := minSide * 5 / 100
	if fontSize < 16 {
		fontSize = 16
	}

	face, err := LoadFont(float64(fontSize))
	if err != nil {
		return err
	}
	defer face.Close()

	textWidth := measureText(face, watermarkText)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textHeight := ascent + metrics.Descent.Ceil()

	const margin = 10
	const padding = 4
	x := w - textWidth - margin
	y := h - textHeight - margin

	black := color.RGBA{A: 255}
	for dy := -padding; dy < textHeight+padding; dy++ {
		for dx := -padding; dx < textWidth+padding; dx++ {
			blendPixel(img, x+dx, y+dy, black, 128)
		}
	}

	drawText(img, face, watermarkText, x, y+ascent, color.RGBA{R: 255, G: 255, B: 255, A: 220})
	return nil
}
