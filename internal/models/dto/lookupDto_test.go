package dto

import (
	"encoding/json"
	"testing"
)

func TestFlexibleBool(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "Bool true", input: `{"erro": true}`, want: true},
		{name: "String true", input: `{"erro": "true"}`, want: true},
		{name: "String false", input: `{"erro": "false"}`, want: false},
		{name: "Absent", input: `{"cep": "01001-000"}`, want: false},
		{name: "Number", input: `{"erro": 1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ViaCEPResponse
			err := json.Unmarshal([]byte(tt.input), &resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && bool(resp.Erro) != tt.want {
				t.Errorf("Erro = %v, want %v", resp.Erro, tt.want)
			}
		})
	}
}
