package suite

// exampleResponse builds a fresh copy of the simulated Suite billing
// response: twelve monthly invoices for 2025, batch currency USD. Each call
// returns a new value so filtering never mutates shared state.
func exampleResponse() *payload {
	return &payload{
		FinancialInfo: &financialInfo{
			Currency: "USD",
			InvoiceDescriptions: []invoiceDescription{
				{ID: "edfc6d1b-a2ef-470b-a343-b3c094766d9c", Cost: 152.16, InvoiceDate: "2025-01-01"},
				{ID: "76ebd754-4be3-4db6-9d14-ffaadf1311b6", Cost: 142.45, InvoiceDate: "2025-02-01"},
				{ID: "4fb7fcfb-5d08-4c0e-853d-991d5feb6ddb", Cost: 157.26, InvoiceDate: "2025-03-01"},
				{ID: "e5f343cc-1200-4dca-9691-dee2aee8183a", Cost: 152.56, InvoiceDate: "2025-04-01"},
				{ID: "0380ba59-fa06-4ea6-a648-2dc92b689eb1", Cost: 151.18, InvoiceDate: "2025-05-01"},
				{ID: "c7b5106b-03c8-468b-8d31-ad387321fc6e", Cost: 156.39, InvoiceDate: "2025-06-01"},
				{ID: "f2e3b7ec-9a5d-472f-b301-c1328c4b2be1", Cost: 153.33, InvoiceDate: "2025-07-01"},
				{ID: "cc8e1580-6457-42ee-baca-dc10f8ca3abe", Cost: 152.73, InvoiceDate: "2025-08-01"},
				{ID: "e137547b-b0b8-45fa-9e96-c54458ff0dbb", Cost: 151.11, InvoiceDate: "2025-09-01"},
				{ID: "2b083e8c-aa52-4198-b2b7-051b0bfb10a3", Cost: 153.60, InvoiceDate: "2025-10-01"},
				{ID: "73f52126-3426-49be-9dd2-8ec31c84ab73", Cost: 152.54, InvoiceDate: "2025-11-01"},
				{ID: "b083fcbf-eb22-4af0-9794-32cf21f0c047", Cost: 155.28, InvoiceDate: "2025-12-01"},
			},
		},
	}
}
