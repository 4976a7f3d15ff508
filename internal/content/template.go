package content

import "fmt"

// StyleTemplate 文案风格模板
// system 定义人设，userTemplate 中的 {topic} 会被替换为主题
type StyleTemplate struct {
	ID          string
	Name        string
	Description string
	System      string
	UserPrompt  string
}

const outputFormat = `请严格按以下 JSON 格式输出，不要输出任何其他内容：
{
  "title": "标题（20字以内，吸引眼球）",
  "content": "正文（800字以内，分段清晰，适当使用 emoji）",
  "tags": ["标签1", "标签2", "标签3", "标签4", "标签5"],
  "call_to_action": "引导互动的结尾句"
}`

var builtinTemplates = []*StyleTemplate{
	{
		ID:          "default",
		Name:        "通用种草",
		Description: "亲和力强的通用分享文案",
		System:      "你是一位资深小红书内容创作者，擅长写出高互动率的种草笔记。语气亲切自然，像朋友聊天。",
		UserPrompt:  "围绕主题「{topic}」写一篇小红书笔记。\n\n" + outputFormat,
	},
	{
		ID:          "review",
		Name:        "测评体验",
		Description: "客观中带主观感受的测评笔记",
		System:      "你是一位小红书测评博主，评价客观真实，优缺点都讲，结论给得干脆。",
		UserPrompt:  "围绕主题「{topic}」写一篇真实测评风格的小红书笔记，包含使用感受和优缺点。\n\n" + outputFormat,
	},
	{
		ID:          "tutorial",
		Name:        "干货教程",
		Description: "步骤清晰的教程类笔记",
		System:      "你是一位小红书干货博主，擅长把复杂的事讲成一步一步可以照做的教程。",
		UserPrompt:  "围绕主题「{topic}」写一篇教程类小红书笔记，步骤编号清晰，每步一两句话。\n\n" + outputFormat,
	},
	{
		ID:          "daily",
		Name:        "日常碎碎念",
		Description: "生活化的随笔分享",
		System:      "你是一位记录日常的小红书博主，文字松弛有生活气息，不堆砌套路。",
		UserPrompt:  "围绕主题「{topic}」写一篇日常分享风格的小红书笔记，像在记录生活。\n\n" + outputFormat,
	},
	{
		ID:          "listicle",
		Name:        "清单盘点",
		Description: "N个XX式的盘点笔记",
		System:      "你是一位小红书盘点博主，擅长写「N个XX」式的清单笔记，每条短小有信息量。",
		UserPrompt:  "围绕主题「{topic}」写一篇清单盘点式小红书笔记，列出5-8条，每条一两句话。\n\n" + outputFormat,
	},
	{
		ID:          "story",
		Name:        "故事叙述",
		Description: "有起伏的个人经历叙述",
		System:      "你是一位会讲故事的小红书博主，从个人经历切入，有冲突有转折有收尾。",
		UserPrompt:  "围绕主题「{topic}」写一篇讲述个人经历的小红书笔记，有代入感。\n\n" + outputFormat,
	},
	{
		ID:          "debate",
		Name:        "观点讨论",
		Description: "抛出争议观点引发讨论",
		System:      "你是一位观点鲜明的小红书博主，敢于提出不同看法，但论据扎实不抬杠。",
		UserPrompt:  "围绕主题「{topic}」写一篇观点讨论式小红书笔记，立场明确，结尾抛问题引导评论。\n\n" + outputFormat,
	},
	{
		ID:          "comparison",
		Name:        "对比横评",
		Description: "两个或多个选项的对比",
		System:      "你是一位小红书横评博主，擅长把几个选项放在一起对比，帮读者做选择。",
		UserPrompt:  "围绕主题「{topic}」写一篇对比横评式小红书笔记，给出明确的选择建议。\n\n" + outputFormat,
	},
}

// ListTemplates 返回全部内置风格
func ListTemplates() []*StyleTemplate {
	return builtinTemplates
}

// LoadTemplate 按 id 查找风格模板
func LoadTemplate(style string) (*StyleTemplate, error) {
	for _, t := range builtinTemplates {
		if t.ID == style {
			return t, nil
		}
	}
	return nil, fmt.Errorf("未找到文案风格: %s", style)
}
