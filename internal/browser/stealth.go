package browser

// stealthJS 页面加载时注入的反检测脚本
// 覆盖一组已知会暴露自动化的浏览器自省属性
const stealthJS = `
// 1. 隐藏 webdriver 属性
Object.defineProperty(navigator, 'webdriver', {
    get: () => undefined,
});

// 2. 伪装 plugins（正常浏览器有插件）
Object.defineProperty(navigator, 'plugins', {
    get: () => {
        const plugins = [
            { name: 'Chrome PDF Plugin', filename: 'internal-pdf-viewer', description: 'Portable Document Format' },
            { name: 'Chrome PDF Viewer', filename: 'mhjfbmdgcfjbbpaeojofohoefgiehjai', description: '' },
            { name: 'Native Client', filename: 'internal-nacl-plugin', description: '' },
        ];
        plugins.length = 3;
        return plugins;
    },
});

// 3. 伪装 languages
Object.defineProperty(navigator, 'languages', {
    get: () => ['zh-CN', 'zh', 'en-US', 'en'],
});

// 4. 修复 chrome.runtime（Playwright 缺失）
if (!window.chrome) window.chrome = {};
if (!window.chrome.runtime) {
    window.chrome.runtime = {
        connect: function() {},
        sendMessage: function() {},
    };
}

// 5. 伪装 permissions query
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
    parameters.name === 'notifications' ?
        Promise.resolve({ state: Notification.permission }) :
        originalQuery(parameters)
);

// 6. WebGL 渲染器伪装
const getParameter = WebGLRenderingContext.prototype.getParameter;
WebGLRenderingContext.prototype.getParameter = function(parameter) {
    // UNMASKED_VENDOR_WEBGL
    if (parameter === 37445) return 'Google Inc. (NVIDIA)';
    // UNMASKED_RENDERER_WEBGL
    if (parameter === 37446) return 'ANGLE (NVIDIA, NVIDIA GeForce GTX 1650 Direct3D11 vs_5_0 ps_5_0, D3D11)';
    return getParameter.call(this, parameter);
};

// 7. 清除 Playwright 特征
delete window.__playwright;
delete window.__pw_manual;
`

// stealthLaunchArgs Chromium 启动参数（反检测）
func stealthLaunchArgs() []string {
	return []string{
		"--disable-blink-features=AutomationControlled",
		"--no-sandbox",
		"--disable-infobars",
		"--disable-dev-shm-usage",
		"--disable-extensions",
		"--lang=zh-CN",
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-popup-blocking",
	}
}

// stealthIgnoreArgs 需要从默认启动参数中剔除的自动化信号
func stealthIgnoreArgs() []string {
	return []string{
		"--enable-automation",
		"--enable-blink-features=IdleDetection",
	}
}
