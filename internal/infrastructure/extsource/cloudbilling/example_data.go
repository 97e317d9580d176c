package cloudbilling

// exampleResponse builds a fresh copy of the simulated CloudBilling expense
// report: twelve monthly entries for 2025, batch currency EUR, numeric
// references, amounts encoded as strings. Each call returns a new value so
// filtering never mutates shared state.
func exampleResponse() *payload {
	return &payload{
		Expenses: expenses{
			Currency: "EUR",
			Monthly: []monthly{
				{IssueDate: "2025-01-01", Bill: bill{Reference: 1001, MoneyToPay: "120.00"}},
				{IssueDate: "2025-02-01", Bill: bill{Reference: 1002, MoneyToPay: "118.00"}},
				{IssueDate: "2025-03-01", Bill: bill{Reference: 1003, MoneyToPay: "121.00"}},
				{IssueDate: "2025-04-01", Bill: bill{Reference: 1004, MoneyToPay: "125.00"}},
				{IssueDate: "2025-05-01", Bill: bill{Reference: 1005, MoneyToPay: "122.00"}},
				{IssueDate: "2025-06-01", Bill: bill{Reference: 1006, MoneyToPay: "127.00"}},
				{IssueDate: "2025-07-01", Bill: bill{Reference: 1007, MoneyToPay: "116.00"}},
				{IssueDate: "2025-08-01", Bill: bill{Reference: 1008, MoneyToPay: "115.00"}},
				{IssueDate: "2025-09-01", Bill: bill{Reference: 1009, MoneyToPay: "117.00"}},
				{IssueDate: "2025-10-01", Bill: bill{Reference: 1010, MoneyToPay: "120.00"}},
				{IssueDate: "2025-11-01", Bill: bill{Reference: 1011, MoneyToPay: "120.00"}},
				{IssueDate: "2025-12-01", Bill: bill{Reference: 1012, MoneyToPay: "124.00"}},
			},
		},
	}
}
