package model

// Categorías de operación del corresponsal. La tabla es configuración
// estática versionada con el código — cambiarla es un cambio de configuración,
// no de lógica: los motores de comisión y conciliación solo la consumen.

// CategoriaOperacion identifies one of the fixed operation categories.
type CategoriaOperacion string

const (
	CategoriaDeposito     CategoriaOperacion = "deposito"
	CategoriaRetiro       CategoriaOperacion = "retiro"
	CategoriaPagoServicio CategoriaOperacion = "pago_servicio"
	CategoriaRecarga      CategoriaOperacion = "recarga"
	CategoriaGiroEnviado  CategoriaOperacion = "giro_enviado"
	CategoriaGiroRecibido CategoriaOperacion = "giro_recibido"
	CategoriaOtroIngreso  CategoriaOperacion = "otro_ingreso"
	CategoriaOtroEgreso   CategoriaOperacion = "otro_egreso"
)

// TipoTransaccion: efecto sobre el efectivo físico de la caja.
type TipoTransaccion string

const (
	TipoIngreso TipoTransaccion = "ingreso"
	TipoEgreso  TipoTransaccion = "egreso"
)

// InfoCategoria carries the immutable metadata of a category.
// Icono and Color are presentation tags for the mobile client; the
// business logic never reads them.
type InfoCategoria struct {
	Nombre             string          `json:"nombre"`
	NombreCorto        string          `json:"nombre_corto"`
	Tipo               TipoTransaccion `json:"tipo"`
	RequiereCanal      bool            `json:"requiere_canal"`
	RequiereReferencia bool            `json:"requiere_referencia"`
	Icono              string          `json:"icono"`
	Color              string          `json:"color"`
}

// Categorias is the static metadata table, keyed by category id.
var Categorias = map[CategoriaOperacion]InfoCategoria{
	CategoriaDeposito: {
		Nombre: "Depósito bancario", NombreCorto: "Depósito",
		Tipo: TipoIngreso, RequiereCanal: true, RequiereReferencia: false,
		Icono: "arrow-down-circle", Color: "#2E7D32",
	},
	CategoriaRetiro: {
		Nombre: "Retiro de cuenta", NombreCorto: "Retiro",
		Tipo: TipoEgreso, RequiereCanal: true, RequiereReferencia: false,
		Icono: "arrow-up-circle", Color: "#C62828",
	},
	CategoriaPagoServicio: {
		Nombre: "Pago de servicio", NombreCorto: "Servicio",
		Tipo: TipoIngreso, RequiereCanal: true, RequiereReferencia: true,
		Icono: "receipt", Color: "#1565C0",
	},
	CategoriaRecarga: {
		Nombre: "Recarga telefónica", NombreCorto: "Recarga",
		Tipo: TipoIngreso, RequiereCanal: true, RequiereReferencia: false,
		Icono: "smartphone", Color: "#6A1B9A",
	},
	CategoriaGiroEnviado: {
		Nombre: "Giro enviado", NombreCorto: "Giro env.",
		Tipo: TipoIngreso, RequiereCanal: true, RequiereReferencia: true,
		Icono: "send", Color: "#00838F",
	},
	CategoriaGiroRecibido: {
		Nombre: "Giro recibido", NombreCorto: "Giro rec.",
		Tipo: TipoEgreso, RequiereCanal: true, RequiereReferencia: true,
		Icono: "inbox", Color: "#EF6C00",
	},
	CategoriaOtroIngreso: {
		Nombre: "Otro ingreso", NombreCorto: "Ingreso",
		Tipo: TipoIngreso, RequiereCanal: false, RequiereReferencia: false,
		Icono: "plus-circle", Color: "#558B2F",
	},
	CategoriaOtroEgreso: {
		Nombre: "Otro egreso", NombreCorto: "Egreso",
		Tipo: TipoEgreso, RequiereCanal: false, RequiereReferencia: false,
		Icono: "minus-circle", Color: "#8E0000",
	},
}

// CategoriasOrdenadas fixes the listing order for clients (maps do not
// iterate deterministically).
var CategoriasOrdenadas = []CategoriaOperacion{
	CategoriaDeposito,
	CategoriaRetiro,
	CategoriaPagoServicio,
	CategoriaRecarga,
	CategoriaGiroEnviado,
	CategoriaGiroRecibido,
	CategoriaOtroIngreso,
	CategoriaOtroEgreso,
}

// EfectoCanal classifies how a category moves the balance of the channel
// (bank/wallet) account, as opposed to Tipo which tracks physical cash.
// Un retiro es un egreso de efectivo pero AUMENTA el saldo del canal (el
// banco acredita al corresponsal lo entregado al cliente); un depósito es
// un ingreso de efectivo pero DISMINUYE el saldo del canal. Las dos tablas
// son ejes independientes y no se derivan una de la otra.
type EfectoCanal int

const (
	EfectoNeutro EfectoCanal = iota
	EfectoAumenta
	EfectoDisminuye
)

// EfectoPorCategoria is the channel-side classification table.
// Categories absent from the map are neutral.
var EfectoPorCategoria = map[CategoriaOperacion]EfectoCanal{
	CategoriaRetiro:       EfectoAumenta,
	CategoriaGiroRecibido: EfectoAumenta,
	CategoriaDeposito:     EfectoDisminuye,
	CategoriaRecarga:      EfectoDisminuye,
	CategoriaPagoServicio: EfectoDisminuye,
	CategoriaGiroEnviado:  EfectoDisminuye,
}

// Valida reports whether the category exists in the metadata table.
func (c CategoriaOperacion) Valida() bool {
	_, ok := Categorias[c]
	return ok
}

// Info returns the category metadata; ok=false for unknown categories.
func (c CategoriaOperacion) Info() (InfoCategoria, bool) {
	info, ok := Categorias[c]
	return info, ok
}

// Efecto returns the channel-side effect of the category (neutral when the
// category is not classified).
func (c CategoriaOperacion) Efecto() EfectoCanal {
	return EfectoPorCategoria[c]
}
