package repository

// Auxiliares de integração usados pelos testes do pacote repository_test
var (
	OpenTestDatabase  = openTestDatabase
	CreateTestProduct = createTestProduct
)
