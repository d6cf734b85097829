package services

// Services defined in this package:
// - IdentifierRegistry: cross-table identifier uniqueness for students, faculty and staff
// - PersonService: create/update/get/list for one person table, including picture uploads
// - UserService: admin account management
// - AuthService: admin login
