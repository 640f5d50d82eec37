package catalog

import "github.com/rayulu7/chatbot/internal/store"

// Builtin returns the canned response set the server ships with. The entry
// order below is the substring scan order.
func Builtin() *Catalog {
	inventoryTable := &store.Table{
		Headers: []string{"Product", "Price", "Stock", "Category"},
		Rows: [][]string{
			{"Laptop Pro 15\"", "$1,299", "25", "Electronics"},
			{"Wireless Mouse", "$29.99", "150", "Accessories"},
			{"Mechanical Keyboard", "$89.99", "45", "Accessories"},
			{"4K Monitor 27\"", "$399.99", "30", "Electronics"},
			{"USB-C Hub", "$49.99", "80", "Accessories"},
		},
	}
	teamTable := &store.Table{
		Headers: []string{"Employee", "Department", "Role", "Experience"},
		Rows: [][]string{
			{"John Doe", "Engineering", "Senior Developer", "5 years"},
			{"Jane Smith", "Marketing", "Marketing Manager", "3 years"},
			{"Bob Johnson", "Sales", "Sales Representative", "2 years"},
			{"Alice Williams", "Engineering", "Tech Lead", "7 years"},
			{"Charlie Brown", "HR", "HR Manager", "4 years"},
		},
	}
	citiesTable := &store.Table{
		Headers: []string{"City", "Population", "Country", "GDP"},
		Rows: [][]string{
			{"New York", "8.3M", "USA", "$1.5T"},
			{"London", "9.0M", "UK", "$650B"},
			{"Tokyo", "13.9M", "Japan", "$1.2T"},
			{"Paris", "2.1M", "France", "$750B"},
			{"Sydney", "5.3M", "Australia", "$400B"},
		},
	}
	salesTable := &store.Table{
		Headers: []string{"Product", "Units Sold", "Revenue", "Quarter"},
		Rows: [][]string{
			{"Laptop Pro", "150", "$194,850", "Q4 2024"},
			{"Wireless Mouse", "450", "$13,496", "Q4 2024"},
			{"Mechanical Keyboard", "120", "$10,799", "Q4 2024"},
			{"4K Monitor", "85", "$33,999", "Q4 2024"},
			{"USB-C Hub", "200", "$9,998", "Q4 2024"},
		},
	}

	entries := []Entry{
		{
			Keyword: "who are you",
			Response: Response{
				Content: "I am ChatBot, an AI assistant designed to help you with various tasks. I can answer questions, provide information, and assist with data analysis.",
				Table: &store.Table{
					Headers: []string{"Feature", "Description", "Status"},
					Rows: [][]string{
						{"AI Assistant", "Natural language processing and understanding", "Active"},
						{"Data Analysis", "Structured data presentation and insights", "Active"},
						{"Chat Interface", "Interactive conversation support", "Active"},
						{"Session Management", "Multi-conversation tracking", "Active"},
					},
					Description: "Here are my key capabilities and features.",
				},
			},
		},
		{
			Keyword: "what are you",
			Response: Response{
				Content: "I am ChatBot, an AI-powered assistant built to help users with questions, data analysis, and information retrieval.",
				Table: &store.Table{
					Headers: []string{"Capability", "Details", "Availability"},
					Rows: [][]string{
						{"Question Answering", "Responds to user queries", "24/7"},
						{"Data Presentation", "Displays information in tables", "24/7"},
						{"Conversation History", "Maintains session context", "24/7"},
						{"Multi-topic Support", "Handles various subjects", "24/7"},
					},
					Description: "My capabilities and availability overview.",
				},
			},
		},
		{
			Keyword: "what can you do",
			Response: Response{
				Content: "I can help you with a variety of tasks including answering questions, analyzing data, providing information, and maintaining conversation context across sessions.",
				Table: &store.Table{
					Headers: []string{"Task Type", "Example", "Support Level"},
					Rows: [][]string{
						{"Information Retrieval", "What is React?", "Full Support"},
						{"Data Analysis", "Show me sales data", "Full Support"},
						{"General Questions", "How does X work?", "Full Support"},
						{"Technical Questions", "Explain programming concepts", "Full Support"},
					},
					Description: "Supported task types and examples.",
				},
			},
		},
		{
			Keyword: "products",
			Response: Response{
				Content: "Here is our current product inventory with pricing and stock information.",
				Table:   withDescription(inventoryTable, "Current product inventory with pricing and availability."),
			},
		},
		{
			Keyword: "inventory",
			Response: Response{
				Content: "Current inventory status across all product categories.",
				Table:   withDescription(inventoryTable, "Complete inventory listing with stock levels."),
			},
		},
		{
			Keyword: "employees",
			Response: Response{
				Content: "Here is our team structure and employee information.",
				Table:   withDescription(teamTable, "Employee directory with department and role information."),
			},
		},
		{
			Keyword: "team",
			Response: Response{
				Content: "Our team members across different departments.",
				Table:   withDescription(teamTable, "Team structure and member details."),
			},
		},
		{
			Keyword: "cities",
			Response: Response{
				Content: "Major cities around the world with demographic and economic data.",
				Table:   withDescription(citiesTable, "Global cities comparison with key metrics."),
			},
		},
		{
			Keyword: "locations",
			Response: Response{
				Content: "Geographic locations and their key statistics.",
				Table:   withDescription(citiesTable, "Location data with demographic and economic indicators."),
			},
		},
		{
			Keyword: "sales",
			Response: Response{
				Content: "Sales performance data for the current period.",
				Table:   withDescription(salesTable, "Sales figures and revenue breakdown by product."),
			},
		},
		{
			Keyword: "revenue",
			Response: Response{
				Content: "Revenue breakdown by product category.",
				Table:   withDescription(salesTable, "Revenue analysis by product for current quarter."),
			},
		},
	}

	fallback := Response{
		Content: "I understand your question. Here is some relevant information that might help.",
		Table: &store.Table{
			Headers: []string{"Topic", "Information", "Details"},
			Rows: [][]string{
				{"General Info", "I can help with various topics", "Ask me anything"},
				{"Data Analysis", "I can present data in tables", "Structured format"},
				{"Questions", "I answer questions", "Multiple topics"},
				{"Conversations", "I maintain context", "Session-based"},
			},
			Description: "General information about my capabilities.",
		},
	}

	return New(fallback, entries)
}

func withDescription(t *store.Table, description string) *store.Table {
	cp := cloneTable(t)
	cp.Description = description
	return cp
}
