package seed

// ProjectNames is the pool seeded project names are drawn from, in order.
var ProjectNames = []string{
	"E-Commerce Platform", "Mobile Banking App", "Healthcare Dashboard", "Social Media Analytics",
	"CRM System", "Inventory Management", "Learning Management", "Project Tracker",
	"Customer Support Portal", "Real Estate Platform", "Food Delivery App", "Travel Booking",
	"HR Management System", "Financial Dashboard", "Marketing Automation", "Event Management",
	"Content Management", "Video Streaming Platform", "IoT Monitoring", "Chat Application",
	"Document Management", "Supply Chain Tracker", "Fitness Tracker", "Recipe Manager",
	"Task Automation", "Budget Planner", "Weather Forecast", "News Aggregator",
	"Music Streaming", "Photo Gallery", "Calendar Scheduler", "Email Client",
	"File Storage System", "Performance Analytics", "Security Monitor", "API Gateway",
	"Notification Service", "User Authentication", "Payment Gateway", "Backup Service",
	"Log Analyzer", "Database Monitor", "Cache Manager", "Load Balancer",
	"CI/CD Pipeline", "Testing Framework", "Documentation Portal", "Code Repository",
	"Bug Tracker", "Feature Flags",
}

// Descriptions holds the project descriptions.
var Descriptions = []string{
	"A comprehensive solution for modern business needs",
	"Streamlined workflow management system",
	"User-friendly interface with advanced features",
	"Scalable architecture for enterprise use",
	"Mobile-first responsive design",
	"Real-time data synchronization",
	"Advanced analytics and reporting",
	"Secure and compliant platform",
	"Intuitive user experience design",
	"High-performance application",
}

// Tags is the tag vocabulary.
var Tags = []string{
	"React", "TypeScript", "Node.js", "MongoDB", "PostgreSQL",
	"AWS", "Docker", "Kubernetes", "GraphQL", "REST API",
}

// TaskNames cycle through a project's tasks.
var TaskNames = []string{
	"Setup project structure", "Design database schema", "Implement authentication",
	"Create user interface", "Add search functionality", "Optimize performance",
	"Write unit tests", "Deploy to staging", "Security audit", "Documentation",
}
