package ussd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/obra-stock/internal/domain/entity"
)

// Opciones del menú raíz. Forma fija de tres acciones: recibir, consultar, usar.
const (
	actionReceive = "1"
	actionCheck   = "2"
	actionUse     = "3"
)

const rootMenu = "Welcome to Site Materials Tracker\n" +
	"1. Record Material Received\n" +
	"2. Check Stock Level\n" +
	"3. Record Material Used"

// Decode deriva la respuesta a partir del input acumulado y el snapshot de materiales.
// Es una función pura: no toca el almacenamiento ni envía nada; los efectos de las
// ramas terminales quedan descritos en Result.Effect para que el orquestador los ejecute.
// El nivel es el número de segmentos separados por "*"; input vacío es nivel 0
// (un único segmento vacío no cuenta como elección).
func Decode(rawInput, callerPhone string, materials []entity.Material) Result {
	rawInput = strings.TrimSpace(rawInput)

	var parts []string
	if rawInput != "" {
		parts = strings.Split(rawInput, Delimiter)
	}

	switch level := len(parts); level {
	case 0:
		return Result{Text: rootMenu}
	case 1:
		return decodeAction(parts[0], materials)
	case 2:
		return decodeMaterial(parts[0], parts[1], materials)
	case 3:
		return decodeQuantity(parts[0], parts[1], parts[2], materials)
	default:
		return Result{Text: "Too many steps or invalid input.", Terminal: true}
	}
}

// decodeAction (nivel 1): toda acción válida necesita un material; se lista el
// inventario numerado 1..N en orden estable de nombre.
func decodeAction(choice string, materials []entity.Material) Result {
	var header string
	switch choice {
	case actionReceive:
		header = "Select Material Received:"
	case actionCheck:
		header = "Select Material:"
	case actionUse:
		header = "Select Material Used:"
	default:
		return Result{Text: "Invalid choice.", Terminal: true}
	}

	if len(materials) == 0 {
		return Result{Text: "No materials found.", Terminal: true}
	}

	var b strings.Builder
	b.WriteString(header)
	for i, m := range materials {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, m.Name))
	}
	return Result{Text: b.String()}
}

// decodeMaterial (nivel 2): resuelve la selección contra la misma numeración del
// nivel anterior. La consulta de stock es terminal; recibir/usar piden cantidad.
func decodeMaterial(choice, indexSegment string, materials []entity.Material) Result {
	material, ok := resolveMaterial(indexSegment, materials)
	if !ok {
		return Result{Text: "Invalid material selection.", Terminal: true}
	}

	switch choice {
	case actionCheck:
		return Result{
			Text:     fmt.Sprintf("%s: %d %s in stock", material.Name, material.Quantity, material.Unit),
			Terminal: true,
			Effect:   &Effect{Kind: EffectCheck, Material: material},
		}
	case actionReceive:
		return Result{Text: fmt.Sprintf("Enter quantity of %s (%s) RECEIVED:", material.Name, material.Unit)}
	case actionUse:
		return Result{Text: fmt.Sprintf("Enter quantity of %s (%s) USED:", material.Name, material.Unit)}
	default:
		return Result{Text: "Invalid choice.", Terminal: true}
	}
}

// decodeQuantity (nivel 3): la cantidad debe ser un entero positivo. El chequeo de
// stock suficiente NO se hace aquí: pertenece al commit atómico del repositorio,
// para no reintroducir la carrera leer-validar-escribir.
func decodeQuantity(choice, indexSegment, quantitySegment string, materials []entity.Material) Result {
	material, ok := resolveMaterial(indexSegment, materials)
	if !ok {
		return Result{Text: "Invalid material selection.", Terminal: true}
	}

	quantity, err := strconv.ParseInt(strings.TrimSpace(quantitySegment), 10, 64)
	if err != nil || quantity <= 0 {
		return Result{Text: "Invalid quantity. Must be a positive number.", Terminal: true}
	}

	switch choice {
	case actionReceive:
		return Result{
			Terminal: true,
			Effect:   &Effect{Kind: EffectReceive, Material: material, Quantity: quantity, Delta: quantity},
		}
	case actionUse:
		return Result{
			Terminal: true,
			Effect:   &Effect{Kind: EffectUse, Material: material, Quantity: quantity, Delta: -quantity},
		}
	default:
		return Result{Text: "Invalid action sequence.", Terminal: true}
	}
}

// resolveMaterial convierte el segmento 1..N en el material correspondiente del snapshot.
func resolveMaterial(indexSegment string, materials []entity.Material) (entity.Material, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(indexSegment))
	if err != nil {
		return entity.Material{}, false
	}
	index := n - 1
	if index < 0 || index >= len(materials) {
		return entity.Material{}, false
	}
	return materials[index], true
}
