package stability

type TextPrompt struct {
	Text string `json:"text"`
}

type TextToImageRequest struct {
	TextPrompts []TextPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type Artifact struct {
	Base64       string `json:"base64"`
	FinishReason string `json:"finishReason"`
	Seed         int64  `json:"seed"`
}

type TextToImageResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}
