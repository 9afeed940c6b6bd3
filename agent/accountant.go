package agent

import (
	"context"

	"github.com/Sam-oo1/bussinBank/tools"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

const accountantInstruction = `
You are the accountant of the user's personal finances. You answer questions
about their net worth, spending, runway and future cash, using only the
figures returned by the tools. Never make up a number.

Keep answers short and friendly. When the user asks about a future date
without giving one precisely, ask them for a date in the YYYY-MM-DD format.
`

// NewAccountant returns the Expert answering with the tools of tb.
func NewAccountant(tb *tools.Toolbox, model string) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := ToolFunctions(tb)
	return &Expert{
		Name:      "Accountant",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: accountantInstruction}}},
		},
		Library: NewLibrary(lib),
	}
}

// ToolFunctions declares every tool of tb as a Function.
func ToolFunctions(tb *tools.Toolbox) []*Func {
	functions := make([]*Func, 0, len(tools.Descriptions))
	for _, d := range tools.Descriptions {
		decl := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Summary,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The answer as a sentence.",
			},
		}
		if d.Name == tools.ProjectFutureBalance {
			decl.Parameters = &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"target_date": {
						Type:        genai.TypeString,
						Description: "The future date, strictly in the YYYY-MM-DD format.",
					},
					"extra_savings": {
						Type:        genai.TypeNumber,
						Description: "Additional amount saved every month, 0 by default.",
					},
				},
				Required: []string{"target_date"},
			}
		}
		name := d.Name
		functions = append(functions, &Func{
			Decl: decl,
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				out, err := tb.Run(name, args)
				if err != nil {
					return errorResponse(id, name, err)
				}
				return outputResponse(id, name, out)
			},
		})
	}
	return functions
}
