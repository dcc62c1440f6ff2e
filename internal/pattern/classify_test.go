package pattern

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line     string
		expected LineClass
	}{
		{"", ClassBlank},
		{"   ", ClassBlank},
		{"1-800-555-1234", ClassPhoneNumber},
		{"800-555-1234", ClassPhoneNumber},
		{"Trans Date  Post Date  Description  Amount", ClassHeader},
		{"P.O. Box 981535 El Paso TX", ClassAddress},
		{"Statement Date: 10/20/2024", ClassBoilerplate},
		{"Interest Charges on purchases", ClassBoilerplate},
		{"Page 3 of 7", ClassBoilerplate},
		{"Pay by phone 1-800-436-7958", ClassBoilerplate},
		{"Billing period 09/21/2024 to 10/20/2024", ClassBoilerplate},
		{"As of 10/20/2024 your points", ClassBoilerplate},
		{"10/12  85C BAKERY CAFE USA BELLEVUE WA  10.50", ClassCandidate},
		{"AUTOPAY 10/15 ONLINE PAYMENT RECEIVED $25.00", ClassCandidate},
	}

	for _, tt := range tests {
		if got := Classify(tt.line); got != tt.expected {
			t.Errorf("Classify(%q): got %v, want %v", tt.line, got, tt.expected)
		}
	}
}

func TestHeaderColumns(t *testing.T) {
	cols := HeaderColumns("Trans Date    Post Date    Description    Amount")
	if len(cols) != 4 {
		t.Fatalf("expected 4 columns, got %v", cols)
	}

	cols = HeaderColumns("Date    Description    Amount")
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %v", cols)
	}

	if HeaderColumns("Date and amount will appear on your next statement") != nil {
		t.Error("prose missing a description column must not be a header")
	}

	if HeaderColumns("Totally unrelated line") != nil {
		t.Error("expected nil for a non-header line")
	}
}
