package responder

import "posterbot/internal/messenger"

func boardingPassTemplate() *messenger.BoardingPassTemplate {
	return &messenger.BoardingPassTemplate{
		TemplateType: messenger.TemplateBoardingPass,
		IntroMessage: "You are checked in.",
		Locale:       "en_US",
		BoardingPass: []messenger.BoardingPass{
			{
				PassengerName:        "Passion/Tsai",
				PNRNumber:            "CG4X7U",
				Seat:                 "74J",
				LogoImageURL:         "https://www.example.com/en/logo.png",
				HeaderImageURL:       "https://www.example.com/en/fb/header.png",
				QRCode:               "M1SMITH/NICOLAS  CG4X7U nawouehgawgnapwi3jfa0wfh",
				AboveBarCodeImageURL: "https://www.example.com/en/PLAT.png",
				AuxiliaryFields: []messenger.Field{
					{Label: "Terminal", Value: "T1"},
					{Label: "Departure", Value: "30OCT 19:05"},
				},
				SecondaryFields: []messenger.Field{
					{Label: "Boarding", Value: "18:30"},
					{Label: "Gate", Value: "D57"},
					{Label: "Seat", Value: "74J"},
					{Label: "Sec.Nr.", Value: "003"},
				},
				FlightInfo: messenger.FlightInfo{
					FlightNumber: "KL0642",
					DepartureAirport: messenger.Airport{
						AirportCode: "JFK",
						City:        "New York",
						Terminal:    "T1",
						Gate:        "D57",
					},
					ArrivalAirport: messenger.Airport{
						AirportCode: "AMS",
						City:        "Amsterdam",
					},
					FlightSchedule: messenger.FlightSchedule{
						DepartureTime: "2016-01-02T19:05",
						ArrivalTime:   "2016-01-05T17:30",
					},
				},
			},
		},
	}
}

func receiptTemplate() *messenger.ReceiptTemplate {
	return &messenger.ReceiptTemplate{
		TemplateType:  messenger.TemplateReceipt,
		RecipientName: "Stephane Crozatier",
		OrderNumber:   "12345678902",
		Currency:      "USD",
		PaymentMethod: "Visa 2345",
		OrderURL:      "http://petersapparel.parseapp.com/order?order_id=123456",
		Timestamp:     "1428444852",
		Address: &messenger.Address{
			Street1:    "1 Hacker Way",
			City:       "Menlo Park",
			PostalCode: "94025",
			State:      "CA",
			Country:    "US",
		},
		Summary: messenger.ReceiptSummary{
			Subtotal:     75.00,
			ShippingCost: 4.95,
			TotalTax:     6.19,
			TotalCost:    56.14,
		},
		Adjustments: []messenger.ReceiptAdjustment{
			{Name: "New Customer Discount", Amount: 20},
			{Name: "$10 Off Coupon", Amount: 10},
		},
		Elements: []messenger.ReceiptElement{
			{
				Title:    "Classic White T-Shirt",
				Subtitle: "100% Soft and Luxurious Cotton",
				Quantity: 2,
				Price:    50,
				Currency: "USD",
				ImageURL: "http://www2.hm.com/zh_asia3/productpage.0637566002.html",
			},
			{
				Title:    "Classic Gray T-Shirt",
				Subtitle: "100% Soft and Luxurious Cotton",
				Quantity: 1,
				Price:    25,
				Currency: "USD",
				ImageURL: "http://www2.hm.com/zh_asia3/productpage.0637566002.html",
			},
		},
	}
}

func buttonTemplate() *messenger.ButtonTemplate {
	return &messenger.ButtonTemplate{
		TemplateType: messenger.TemplateButton,
		Text:         "What do you want to do next?",
		Buttons: []messenger.Button{
			{Type: messenger.ButtonWebURL, URL: "https://www.messenger.com", Title: "Visit Messenger"},
			{Type: messenger.ButtonWebURL, URL: "https://www.google.com.tw/", Title: "Ask Google"},
			{Type: messenger.ButtonWebURL, URL: "https://passiontsai.github.io/blog/turkey_culture/", Title: "Go Passion Blog"},
		},
	}
}
