package ai

import (
	"fmt"
	"strings"

	"globaled/models"
)

const (
	LangEnglish = "en"
	LangChinese = "zh"

	newChatTitle   = "New Chat"
	titleMaxRunes  = 40
	analysisFailed = "Error performing analysis."

	// ConfigErrorMessage is shown instead of sending when no credential is set.
	ConfigErrorMessage = "Gemini API key is not configured. Please set the GEMINI_API_KEY environment variable."
)

// NormalizeLang maps anything other than zh to en.
func NormalizeLang(lang string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), LangChinese) {
		return LangChinese
	}
	return LangEnglish
}

const personaEN = `You are 'GlobalEd AI', an expert AI assistant for students applying to universities abroad. ` +
	`Your knowledge covers application procedures, university requirements, major details, and visa processes for countries like the USA, UK, Canada, Australia, and top destinations in Europe and Asia. ` +
	`You must provide accurate, helpful, and encouraging advice. When asked for recommendations, always ask clarifying questions about the user's academic background (GPA, test scores), interests, and budget. ` +
	`You can also help draft and refine application essays, personal statements, and resumes. Format your responses clearly using markdown, such as lists and bold text. ` +
	`When the conversation matches a mentor's expertise from the list we provide, recommend the most suitable one.`

const personaZH = `你是一位专业的留学申请AI助手“GlobalEd AI”。你的任务是回答用户关于留学规划的问题，包括申请流程、院校要求、专业信息和签证事宜。` +
	`请提供准确、有帮助且鼓励性的建议，并使用Markdown清晰排版。根据我们提供的导师列表，在对话内容与导师专业领域匹配时，推荐最合适的一位导师。`

func systemInstruction(lang string) string {
	if lang == LangChinese {
		return personaZH
	}
	return personaEN
}

// recommendationPrompt embeds the mentor catalog ahead of the user's question.
func recommendationPrompt(catalog []models.Mentor, question string) string {
	var sb strings.Builder
	sb.WriteString("Here is the list of available mentors:\n")
	for _, m := range catalog {
		fmt.Fprintf(&sb, "ID: %d, Name: %s, University: %s, Major: %s, Specialties: %s\n", m.ID, m.Name, m.University, m.Major, m.Experience)
	}
	sb.WriteString("\nNow, please answer the user's question:\n\"\"\"")
	sb.WriteString(question)
	sb.WriteString("\"\"\"")
	return sb.String()
}

func greeting(lang string) string {
	if lang == LangChinese {
		return "你好！我是您的AI助手。今天我能如何帮助您规划留学申请？"
	}
	return "Hello! I am your AI Helper. How can I assist you with your university applications today?"
}

// fallbackReply is appended to the conversation when a request fails.
func fallbackReply(lang string) string {
	if lang == LangChinese {
		return "哎呀，出错了！请稍后重试。"
	}
	return "Sorry, I encountered an error. Please try again."
}

// errorNotice is the transient banner text for a failed request.
func errorNotice(lang string) string {
	if lang == LangChinese {
		return "抱歉，处理您的请求时发生错误。请稍后再试。"
	}
	return "Sorry, an error occurred while processing your request. Please try again later."
}

func analysisPrompt(kind models.AnalysisKind, text string) string {
	if kind == models.AnalysisGrammar {
		return fmt.Sprintf("Please act as an expert proofreader. Correct any grammatical errors, spelling mistakes, and awkward phrasing in the following text. "+
			"Provide the corrected version and a brief explanation of the key changes.\n\nText: %q", text)
	}
	return fmt.Sprintf("Analyze the following text for originality and impact, as if it were part of a university application. "+
		"Does it seem generic or use common clichés? Provide specific, constructive feedback on how to make it more unique, personal, and compelling. "+
		"Offer alternative phrasing or ideas.\n\nText: %q", text)
}

func writingPrompt(kind models.AnalysisKind, text string) string {
	if kind == models.AnalysisGrammar {
		return fmt.Sprintf("Please check the grammar of the following text and provide corrections and suggestions. Text: %q", text)
	}
	return fmt.Sprintf("Please analyze the originality of the following text. Is it plagiarized? Provide a brief analysis. Text: %q", text)
}

const writingFailed = "Sorry, I encountered an error while analyzing the text."

// titleFrom derives a conversation title from the first user message.
func titleFrom(text string) string {
	r := []rune(strings.TrimSpace(text))
	if len(r) <= titleMaxRunes {
		return string(r)
	}
	return string(r[:titleMaxRunes]) + "..."
}
