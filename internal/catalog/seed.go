package catalog

// SeedBooks are the sample records loaded at service startup, before any
// client request is served. A process restart resets the catalog to
// exactly these three.
var SeedBooks = []Fields{
	{
		Title:         "The Python Handbook",
		Author:        "Jane Doe",
		ISBN:          "978-1234567890",
		PublishedYear: 2023,
		Genre:         "Technology",
		Description:   "A comprehensive guide to Python programming",
	},
	{
		Title:         "Microservices Architecture",
		Author:        "John Smith",
		ISBN:          "978-0987654321",
		PublishedYear: 2022,
		Genre:         "Technology",
		Description:   "Building scalable distributed systems",
	},
	{
		Title:         "The Great Adventure",
		Author:        "Alice Johnson",
		ISBN:          "978-1122334455",
		PublishedYear: 2021,
		Genre:         "Fiction",
		Description:   "An epic tale of discovery",
	},
}

// SeedStore inserts the sample records into store.
func SeedStore(store *Store) {
	for _, f := range SeedBooks {
		store.Insert(f)
	}
}
