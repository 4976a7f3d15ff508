package cover

import (
	"fmt"
	"math/rand"
)

// Circle 装饰圆形，位置为相对坐标
type Circle struct {
	X, Y   float64
	Radius int
	Color  string
	Alpha  uint8
}

// Line 装饰横线，宽度为相对比例、高度为像素
type Line struct {
	X, Y   float64
	Width  float64
	Height int
	Color  string
}

// Template 封面模板
// 颜色使用 #RRGGBB，位置使用 0~1 相对坐标
type Template struct {
	ID            string
	Name          string
	BGColor       string
	BGGradient    []string
	TitleColor    string
	SubtitleColor string
	TitleSize     float64
	SubtitleSize  float64
	TitleY        float64
	SubtitleY     float64
	Circles       []Circle
	Lines         []Line
}

var coverTemplates = []*Template{
	{
		ID: "minimal", Name: "简约风格",
		BGColor: "#F8F9FA", TitleColor: "#2D3748", SubtitleColor: "#718096",
		TitleSize: 72, SubtitleSize: 36, TitleY: 0.4, SubtitleY: 0.55,
		Lines: []Line{{X: 0.2, Y: 0.3, Width: 0.6, Height: 2, Color: "#E2E8F0"}},
	},
	{
		ID: "gradient", Name: "渐变风格",
		BGGradient: []string{"#667eea", "#764ba2"},
		TitleColor: "#FFFFFF", SubtitleColor: "#F7FAFC",
		TitleSize: 68, SubtitleSize: 34, TitleY: 0.35, SubtitleY: 0.5,
		Circles: []Circle{
			{X: 0.15, Y: 0.2, Radius: 40, Color: "#FFFFFF", Alpha: 30},
			{X: 0.85, Y: 0.8, Radius: 60, Color: "#FFFFFF", Alpha: 20},
		},
	},
	{
		ID: "magazine", Name: "杂志风格",
		BGColor: "#1A202C", TitleColor: "#F7FAFC", SubtitleColor: "#FED7D7",
		TitleSize: 64, SubtitleSize: 32, TitleY: 0.25, SubtitleY: 0.4,
		Lines: []Line{{X: 0.1, Y: 0.15, Width: 0.8, Height: 4, Color: "#F56565"}},
	},
	{
		ID: "tech", Name: "科技风格",
		BGGradient: []string{"#0F2027", "#2C5364"},
		TitleColor: "#00F5FF", SubtitleColor: "#B0E0E6",
		TitleSize: 66, SubtitleSize: 34, TitleY: 0.35, SubtitleY: 0.5,
		Lines: []Line{{X: 0.1, Y: 0.25, Width: 0.8, Height: 1, Color: "#00F5FF"}},
	},
	{
		ID: "food", Name: "美食风格",
		BGGradient: []string{"#FFF8DC", "#FFEFD5"},
		TitleColor: "#8B4513", SubtitleColor: "#A0522D",
		TitleSize: 68, SubtitleSize: 36, TitleY: 0.4, SubtitleY: 0.55,
		Circles: []Circle{
			{X: 0.2, Y: 0.2, Radius: 30, Color: "#FF6347", Alpha: 100},
			{X: 0.8, Y: 0.8, Radius: 40, Color: "#FFD700", Alpha: 120},
		},
	},
	{
		ID: "travel", Name: "旅行风格",
		BGGradient: []string{"#87CEEB", "#98FB98"},
		TitleColor: "#FFFFFF", SubtitleColor: "#F0F8FF",
		TitleSize: 70, SubtitleSize: 38, TitleY: 0.3, SubtitleY: 0.45,
		Circles: []Circle{{X: 0.85, Y: 0.15, Radius: 50, Color: "#FFFF00", Alpha: 150}},
	},
	{
		ID: "business", Name: "商务风格",
		BGColor: "#2D3748", TitleColor: "#F7FAFC", SubtitleColor: "#CBD5E0",
		TitleSize: 64, SubtitleSize: 32, TitleY: 0.35, SubtitleY: 0.5,
		Lines: []Line{
			{X: 0.15, Y: 0.25, Width: 0.7, Height: 3, Color: "#4299E1"},
			{X: 0.15, Y: 0.65, Width: 0.4, Height: 2, Color: "#48BB78"},
		},
	},
	{
		ID: "education", Name: "教育风格",
		BGColor: "#EDF2F7", TitleColor: "#2D3748", SubtitleColor: "#4A5568",
		TitleSize: 70, SubtitleSize: 36, TitleY: 0.3, SubtitleY: 0.45,
		Circles: []Circle{
			{X: 0.2, Y: 0.7, Radius: 20, Color: "#4299E1", Alpha: 255},
			{X: 0.8, Y: 0.75, Radius: 15, Color: "#48BB78", Alpha: 255},
		},
	},
}

// ListCoverTemplates 返回全部封面模板
func ListCoverTemplates() []*Template {
	return coverTemplates
}

// LookupTemplate 按 id 查找模板，"random" 随机挑一个
func LookupTemplate(name string) (*Template, error) {
	if name == "random" || name == "" {
		return coverTemplates[rand.Intn(len(coverTemplates))], nil
	}
	for _, t := range coverTemplates {
		if t.ID == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("模板不存在: %s", name)
}
