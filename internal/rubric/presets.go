package rubric

// DefaultCatalog returns the preset rubrics shipped with the gateway. The
// documents are domain data, consumed verbatim by the grading workflow.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]map[string][]Preset{
		"Universidad Nacional": {
			"Programación I": {
				{
					Name: "Parcial estándar",
					Document: `{
  "titulo": "Parcial de Programación I",
  "puntaje_maximo": 100,
  "criterios": [
    {"nombre": "Correctitud", "peso": 40, "descripcion": "El programa produce la salida esperada para todos los casos."},
    {"nombre": "Diseño", "peso": 25, "descripcion": "Descomposición en funciones y estructuras de datos adecuadas."},
    {"nombre": "Estilo", "peso": 15, "descripcion": "Nombres claros, indentación consistente, sin código muerto."},
    {"nombre": "Casos borde", "peso": 20, "descripcion": "Manejo de entradas vacías, límites y errores."}
  ]
}`,
				},
				{
					Name: "Laboratorio corto",
					Document: `{
  "titulo": "Laboratorio de Programación I",
  "puntaje_maximo": 10,
  "criterios": [
    {"nombre": "Funcionalidad", "peso": 7, "descripcion": "El ejercicio cumple la consigna."},
    {"nombre": "Presentación", "peso": 3, "descripcion": "Entrega ordenada y documentada."}
  ]
}`,
				},
			},
			"Bases de Datos": {
				{
					Name: "Examen final",
					Document: `{
  "titulo": "Final de Bases de Datos",
  "puntaje_maximo": 100,
  "criterios": [
    {"nombre": "Modelado", "peso": 35, "descripcion": "Diagrama entidad-relación normalizado."},
    {"nombre": "Consultas SQL", "peso": 40, "descripcion": "Consultas correctas y eficientes."},
    {"nombre": "Transacciones", "peso": 25, "descripcion": "Uso correcto de aislamiento y bloqueos."}
  ]
}`,
				},
			},
		},
		"Instituto Tecnológico": {
			"Matemática Discreta": {
				{
					Name: "Parcial de demostraciones",
					Document: `{
  "titulo": "Parcial de Matemática Discreta",
  "puntaje_maximo": 100,
  "criterios": [
    {"nombre": "Rigor", "peso": 50, "descripcion": "Demostraciones completas y sin saltos lógicos."},
    {"nombre": "Notación", "peso": 20, "descripcion": "Uso correcto de la notación formal."},
    {"nombre": "Claridad", "peso": 30, "descripcion": "Argumentos ordenados y legibles."}
  ]
}`,
				},
			},
		},
	})
}
