package domain

// SeedUsers returns the sample users every fresh store starts with
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "Ahmet Yılmaz", Username: "ahmetyilmaz", Email: "ahmet.yilmaz@hotmail.com"},
		{ID: 2, Name: "Ayşe Demir", Username: "aysedemir", Email: "ayse.demir@gmail.com"},
		{ID: 3, Name: "Mehmet Kaya", Username: "mehmetkaya", Email: "mehmet.kaya@outlook.com"},
		{ID: 4, Name: "Fatma Özkan", Username: "fatmaozkan", Email: "fatma.ozkan@yahoo.com"},
		{ID: 5, Name: "Emre Şahin", Username: "emresahin", Email: "emre.sahin@hotmail.com"},
	}
}

// SeedPosts returns the sample posts every fresh store starts with
func SeedPosts() []Post {
	return []Post{
		{
			ID:     1,
			UserID: 1,
			Title:  "Getting Started with React Development",
			Body:   "React is a powerful JavaScript library for building user interfaces. In this post, we will explore the fundamental concepts of React, including components, state management, and the virtual DOM. Whether you are a beginner or looking to refresh your knowledge, this guide will help you understand the core principles.",
		},
		{
			ID:     2,
			UserID: 1,
			Title:  "Understanding TypeScript Benefits",
			Body:   "TypeScript brings static typing to JavaScript, making your code more robust and maintainable. With features like type checking, intellisense, and better refactoring capabilities, TypeScript has become an essential tool for modern web development. Learn how to leverage these benefits in your next project.",
		},
		{
			ID:     3,
			UserID: 1,
			Title:  "Building Modern Web Applications",
			Body:   "Modern web development requires a solid understanding of various technologies and frameworks. From responsive design principles to performance optimization, this article covers the essential skills needed to create fast, accessible, and user-friendly web applications in today's competitive landscape.",
		},
		{
			ID:     4,
			UserID: 2,
			Title:  "Backend Development with NestJS",
			Body:   "NestJS is a progressive Node.js framework for building efficient and scalable server-side applications. With its modular architecture, dependency injection, and TypeScript support, NestJS provides developers with powerful tools to create robust APIs and microservices.",
		},
		{
			ID:     5,
			UserID: 2,
			Title:  "Database Design Best Practices",
			Body:   "Effective database design is crucial for application performance and scalability. This post covers normalization techniques, indexing strategies, and relationship modeling. Understanding these concepts will help you build databases that can handle growing data requirements efficiently.",
		},
	}
}
