package config

import "testing"

func TestValidate_MissingAPIKey(t *testing.T) {
	conf := &Configuration{}
	err := conf.Validate()
	if err == nil {
		t.Fatal("Expected error for missing api key, got nil")
	}
	if err.Error() != "config: OPENAI__API_KEY is required" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	conf := &Configuration{}
	conf.OpenAI.APIKey = "sk-test"
	conf.OpenAI.TimeoutSeconds = -1
	if err := conf.Validate(); err == nil {
		t.Fatal("Expected error for negative timeout, got nil")
	}
}

func TestValidate_OK(t *testing.T) {
	conf := &Configuration{}
	conf.OpenAI.APIKey = "sk-test"
	if err := conf.Validate(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestApplyDefaults_FillsEmptyFields(t *testing.T) {
	o := OpenAI{APIKey: "sk-test"}
	o.ApplyDefaults()

	if o.Model != DefaultOpenAIModel {
		t.Errorf("Expected model '%s', got '%s'", DefaultOpenAIModel, o.Model)
	}
	if o.BaseURL != DefaultOpenAIBaseURL {
		t.Errorf("Expected base url '%s', got '%s'", DefaultOpenAIBaseURL, o.BaseURL)
	}
	if o.TimeoutSeconds != DefaultOpenAITimeoutSeconds {
		t.Errorf("Expected timeout %d, got %d", DefaultOpenAITimeoutSeconds, o.TimeoutSeconds)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	o := OpenAI{
		APIKey:         "sk-test",
		Model:          "gpt-4o",
		BaseURL:        "http://localhost:8080",
		TimeoutSeconds: 30,
	}
	o.ApplyDefaults()

	if o.Model != "gpt-4o" {
		t.Errorf("Expected model 'gpt-4o', got '%s'", o.Model)
	}
	if o.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected base url 'http://localhost:8080', got '%s'", o.BaseURL)
	}
	if o.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30, got %d", o.TimeoutSeconds)
	}
}
