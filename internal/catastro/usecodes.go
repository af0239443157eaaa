package catastro

// useDescriptions maps the cadastre's 3-digit use codes to their official
// category labels. Codes outside the table report "Desconocido".
var useDescriptions = map[string]string{
	"001": "Residencial",
	"002": "Comercial",
	"003": "Industrial",
	"004": "Dotacional",
	"005": "Urbanizado No Edificado",
	"006": "Urbanizable No Urbanizado",
	"007": "No Urbanizable",
	"008": "Rural",
	"009": "Minero",
	"010": "Comercial en Corredor Comercial",
	"011": "Comercial en Centro Comercial",
	"012": "Depósitos de Almacenamiento",
	"013": "Dotacional Privado",
	"014": "Dotacional Público",
	"015": "Urbanizado No Edificado en Desarrollo",
	"016": "Vías",
	"017": "Unidad Residencial",
	"018": "Unidad Comercial",
	"019": "Unidad Industrial",
	"020": "Unidad Dotacional",
	"021": "Parqueadero Cubierto",
	"022": "Parqueadero Descubierto",
	"023": "Bodega",
	"024": "Garaje Cubierto",
	"025": "Garaje Descubierto",
	"026": "Zonas Comunes",
	"027": "Bien Exclusivo",
	"028": "Agrícola",
	"029": "Pecuario",
	"030": "Agroindustrial",
	"031": "Recreacional",
	"032": "Habitacional",
	"033": "Forestal",
	"034": "Preservación Ambiental",
	"035": "Agrícola con Vivienda",
	"036": "Pecuario con Vivienda",
	"037": "Agroindustrial con Vivienda",
	"038": "Recreacional con Vivienda",
	"039": "Forestal con Vivienda",
	"040": "Preservación Ambiental con Vivienda",
}

const unknownUseDescription = "Desconocido"

// UseDescription returns the label for a cadastral use code.
func UseDescription(code string) string {
	if desc, ok := useDescriptions[code]; ok {
		return desc
	}
	return unknownUseDescription
}
