package browser

import (
	"fmt"
	"math/rand"
)

// Fingerprint 一次会话使用的浏览器指纹
// 每次创建会话时重新生成，不跨会话持久化，避免指纹过于稳定
type Fingerprint struct {
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
	TimezoneID     string
}

// UA 池：真实存在的 Chrome 版本 × 桌面平台组合
// 池内只有桌面平台，保证不会与桌面分辨率产生矛盾组合
var chromeVersions = []string{
	"120.0.6099.109", "120.0.6099.199", "121.0.6167.85",
	"122.0.6261.94", "123.0.6312.58", "124.0.6367.91",
	"125.0.6422.76", "126.0.6478.114", "127.0.6533.72",
	"128.0.6613.84", "129.0.6668.58", "130.0.6723.91",
	"131.0.6778.85",
}

var uaPlatforms = []string{
	"Windows NT 10.0; Win64; x64",
	"Macintosh; Intel Mac OS X 10_15_7",
	"X11; Linux x86_64",
}

// 常见桌面分辨率池
var viewports = [][2]int{
	{1366, 768}, {1440, 900}, {1536, 864}, {1600, 900},
	{1920, 1080}, {1280, 800}, {1280, 720}, {1360, 768},
	{1680, 1050}, {1280, 1024},
}

// GenerateFingerprint 生成随机但自洽的浏览器指纹
// 视口在常见分辨率基础上做 ±10/±5 像素微调，避免被指纹库精确匹配
func GenerateFingerprint() Fingerprint {
	version := chromeVersions[rand.Intn(len(chromeVersions))]
	platform := uaPlatforms[rand.Intn(len(uaPlatforms))]

	vp := viewports[rand.Intn(len(viewports))]
	width := vp[0] + rand.Intn(21) - 10
	height := vp[1] + rand.Intn(11) - 5

	return Fingerprint{
		UserAgent: fmt.Sprintf(
			"Mozilla/5.0 (%s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36",
			platform, version,
		),
		ViewportWidth:  width,
		ViewportHeight: height,
		Locale:         "zh-CN",
		TimezoneID:     "Asia/Shanghai",
	}
}

// ExtraHeaders 与指纹匹配的请求头
func (f Fingerprint) ExtraHeaders() map[string]string {
	return map[string]string{
		"Accept-Language":           "zh-CN,zh;q=0.9,en;q=0.8",
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Upgrade-Insecure-Requests": "1",
	}
}
