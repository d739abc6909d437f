package core

type OpenAIEndpoint string

// OpenAIAPIVersion 組合上游 URL 時固定夾在 base URL 與 endpoint 之間
const OpenAIAPIVersion = "/v1"

const (
	OpenAIChatEndpoint   OpenAIEndpoint = "/chat/completions"
	OpenAIModelsEndpoint OpenAIEndpoint = "/models"
)

const ChatRoleUser = "user"

// ResponseFormatJSONObject 要求上游以合法 JSON object 回覆
const ResponseFormatJSONObject = "json_object"
