package gemini

// Wire types for the generateContent endpoint. Request and response
// shapes here cover only the fields this client reads or writes;
// unknown response fields are ignored by the decoder.

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// tool enables server-side web search. The empty object is the whole
// configuration; presence of the key switches grounding on.
type tool struct {
	GoogleSearch googleSearch `json:"google_search"`
}

type googleSearch struct{}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           *content           `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingAttributions []groundingAttribution `json:"groundingAttributions"`
}

type groundingAttribution struct {
	Web *webSource `json:"web"`
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// errorResponse is the body shape the API uses for non-2xx statuses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
}
