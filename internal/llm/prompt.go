package llm

// BuildMenuExtractPrompt asks for the weekly mess menu as strict JSON keyed
// by weekday name, every day carrying all four meal slots.
func BuildMenuExtractPrompt() string {
	return `
You are a data extraction engine.

Your task:
- Read the attached mess menu image.
- Convert it into STRICT JSON.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO comments.
- NO extra text.

Required JSON schema (keys are the seven weekday names):
{
  "Monday": {
    "Breakfast": "comma-separated dishes or N/A",
    "Lunch": "comma-separated dishes or N/A",
    "Snacks": "comma-separated dishes or N/A",
    "Dinner": "comma-separated dishes or N/A"
  },
  "Tuesday": { ... },
  "Wednesday": { ... },
  "Thursday": { ... },
  "Friday": { ... },
  "Saturday": { ... },
  "Sunday": { ... }
}

Use "N/A" for any meal absent from the image.
`
}
