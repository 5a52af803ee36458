package openai

import "time"

const (
	DefaultChatModel          = "gpt-4o-mini"
	DefaultTranscriptionModel = "whisper-1"

	// QwenBaseURL is Alibaba's OpenAI-compatible endpoint.
	QwenBaseURL      = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	DefaultQwenModel = "qwen-plus"

	DefaultTimeout = 60 * time.Second
)
