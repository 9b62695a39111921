package llm

import (
	"encoding/json"
	"testing"

	"github.com/leakscanner/backend/internal/models"
)

// TestScanReportSchema проверяет, что схема ScanReport пригодна для
// strict mode: инлайн, без $ref, с запретом дополнительных полей
func TestScanReportSchema(t *testing.T) {
	schema := GenerateSchema[models.ScanReport]()

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(schemaBytes, &flat); err != nil {
		t.Fatalf("Failed to unmarshal schema: %v", err)
	}

	if flat["additionalProperties"] != false {
		t.Error("Schema must forbid additional properties")
	}
	if _, ok := flat["$ref"]; ok {
		t.Error("Schema must be inlined, $ref is not allowed in strict mode")
	}

	props, ok := flat["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("Schema has no properties map")
	}

	for _, field := range []string{"score", "totalLoss", "storeName", "summary", "issues"} {
		if _, ok := props[field]; !ok {
			t.Errorf("Schema is missing property %q", field)
		}
	}
}

// TestScanReportSchemaRequiresAllProperties: strict mode требует, чтобы
// каждый ключ из properties был в required - включая omitempty-поля
// вроде technicalAudit, и на вложенных уровнях тоже
func TestScanReportSchemaRequiresAllProperties(t *testing.T) {
	schema := GenerateSchema[models.ScanReport]()

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}

	var flat map[string]interface{}
	if err := json.Unmarshal(schemaBytes, &flat); err != nil {
		t.Fatalf("Failed to unmarshal schema: %v", err)
	}

	assertAllPropertiesRequired(t, "", flat)
}

func assertAllPropertiesRequired(t *testing.T, path string, node map[string]interface{}) {
	t.Helper()

	props, ok := node["properties"].(map[string]interface{})
	if !ok {
		if items, ok := node["items"].(map[string]interface{}); ok {
			assertAllPropertiesRequired(t, path+".items", items)
		}
		return
	}

	required := map[string]bool{}
	if names, ok := node["required"].([]interface{}); ok {
		for _, name := range names {
			if s, ok := name.(string); ok {
				required[s] = true
			}
		}
	}

	for name, child := range props {
		if !required[name] {
			t.Errorf("Property %q at %q is missing from required", name, path)
		}
		if childMap, ok := child.(map[string]interface{}); ok {
			assertAllPropertiesRequired(t, path+"."+name, childMap)
		}
	}
}

// TestScanReportIgnoresExtraFields: лишние поля модели отбрасываются
// при unmarshal и не всплывают обратно при marshal
func TestScanReportIgnoresExtraFields(t *testing.T) {
	input := `{
		"score": 50,
		"totalLoss": 100,
		"storeName": "X",
		"summary": "s",
		"issues": [],
		"confidence": 0.9,
		"debug_notes": "internal"
	}`

	var report models.ScanReport
	if err := json.Unmarshal([]byte(input), &report); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	reMarshaled, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var remarshaled map[string]interface{}
	if err := json.Unmarshal(reMarshaled, &remarshaled); err != nil {
		t.Fatalf("Unmarshal remarshaled failed: %v", err)
	}

	if _, ok := remarshaled["confidence"]; ok {
		t.Error("confidence should not be present after marshaling")
	}
	if _, ok := remarshaled["debug_notes"]; ok {
		t.Error("debug_notes should not be present after marshaling")
	}
}
