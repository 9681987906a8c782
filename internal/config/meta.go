package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// New Settings fields show up automatically.
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			continue
		}
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = generateExampleValue(field.Type, jsonName)
	}

	return example
}

// generateExampleValue creates an example value based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "debug"
		case reflect.Int:
			switch fieldName {
			case "default_cardio_minutes":
				return DefaultCardioMinutes
			case "default_planned_minutes":
				return DefaultPlannedMinutes
			case "generator_timeout_seconds":
				return DefaultGeneratorTimeoutSeconds
			case "max_log_files":
				return 1000
			case "ssh_port":
				return DefaultSSHPort
			}
			return 10
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "generator_url":
			return "http://localhost:8080/v1/workouts/generate"
		case "metrics_addr":
			return DefaultMetricsAddr
		case "ssh_host":
			return DefaultSSHHost
		case "storage_backend":
			return DefaultStorageBackend
		default:
			return "example"
		}
	}

	return nil
}
