package gemini

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/getkin/kin-openapi/openapi3"
	"google.golang.org/genai"

	contractx "github.com/charla-ai/charla/bot/contract"
)

// toGenAITools converts the registry's declarations into one Gemini tool
// carrying every function declaration, mirroring how the declarations are
// grouped on the wire.
func toGenAITools(decls []*schema.ToolInfo) ([]*genai.Tool, error) {
	if len(decls) == 0 {
		return nil, nil
	}

	fns := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, decl := range decls {
		fn, err := toFunctionDeclaration(decl)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}

	return []*genai.Tool{{FunctionDeclarations: fns}}, nil
}

func toFunctionDeclaration(decl *schema.ToolInfo) (*genai.FunctionDeclaration, error) {
	if decl == nil || decl.Name == "" {
		return nil, fmt.Errorf("%w: tool declaration needs a name", contractx.ErrValidation)
	}

	fn := &genai.FunctionDeclaration{
		Name:        decl.Name,
		Description: decl.Desc,
	}
	if decl.ParamsOneOf == nil {
		return fn, nil
	}

	params, err := decl.ParamsOneOf.ToOpenAPIV3()
	if err != nil {
		return nil, fmt.Errorf("%w: tool=%s parameter schema: %v", contractx.ErrValidation, decl.Name, err)
	}
	if params == nil {
		return fn, nil
	}

	fn.Parameters = toGenAISchema(params)
	return fn, nil
}

func toGenAISchema(src *openapi3.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:        toGenAIType(src.Type),
		Description: src.Description,
		Required:    src.Required,
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(src.Properties))
		for name, ref := range src.Properties {
			if ref == nil || ref.Value == nil {
				continue
			}
			out.Properties[name] = toGenAISchema(ref.Value)
		}
	}
	if src.Items != nil && src.Items.Value != nil {
		out.Items = toGenAISchema(src.Items.Value)
	}
	return out
}

func toGenAIType(t string) genai.Type {
	switch t {
	case openapi3.TypeObject:
		return genai.TypeObject
	case openapi3.TypeArray:
		return genai.TypeArray
	case openapi3.TypeNumber:
		return genai.TypeNumber
	case openapi3.TypeInteger:
		return genai.TypeInteger
	case openapi3.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
