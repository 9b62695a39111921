package llm

import "github.com/invopop/jsonschema"

// GenerateSchema генерирует JSON схему для типа T.
// AllowAdditionalProperties=false - лишние поля запрещены схемой,
// DoNotReference=true - инлайн-схема без $ref (требование strict mode).
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	requireAllProperties(schema)
	return schema
}

// requireAllProperties добавляет каждое свойство в required на всех
// уровнях схемы. Strict mode требует, чтобы каждый ключ из properties
// был перечислен в required - опциональность через omitempty (например
// technicalAudit) иначе ломает запрос ещё до вызова модели.
func requireAllProperties(s *jsonschema.Schema) {
	if s == nil {
		return
	}

	if s.Properties != nil {
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if !required[pair.Key] {
				s.Required = append(s.Required, pair.Key)
			}
			requireAllProperties(pair.Value)
		}
	}

	requireAllProperties(s.Items)
}
