package dto

type ChatRequest struct {
	Query string `json:"query"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type PredictResponse struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Remedy     string  `json:"remedy"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
