package cover

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// 中文字体按系统常见路径探测，全部缺席时报错而不是画出方块
var fontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

// loadSFNT 解析首个可用的系统字体，进程内只解析一次
func loadSFNT() (*opentype.Font, error) {
	fontOnce.Do(func() {
		for _, path := range fontPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			collection, err := opentype.ParseCollection(data)
			if err != nil {
				continue
			}
			f, err := collection.Font(0)
			if err != nil {
				continue
			}
			parsedFont = f
			return
		}
		fontErr = fmt.Errorf("未找到可用的中文字体，请安装 Noto Sans CJK 或文泉驿正黑")
	})
	return parsedFont, fontErr
}

// LoadFont 按字号创建字体 Face
func LoadFont(size float64) (font.Face, error) {
	f, err := loadSFNT()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
