package entity

// Material representa un material de obra con su existencia actual.
// Quantity nunca es negativa: el decremento se valida de forma atómica en el repositorio.
type Material struct {
	ID       int64
	Name     string // único, no vacío
	Unit     string // etiqueta libre: "bags", "tonnes", "metres"...
	Quantity int64
}
