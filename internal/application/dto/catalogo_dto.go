package dto

// ProductoAgricolaRequest body para crear/actualizar materias primas.
type ProductoAgricolaRequest struct {
	Nombre      string `json:"nombre"`
	Codigo      string `json:"codigo,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// ProductoTerminadoRequest body para crear/actualizar productos de molienda.
type ProductoTerminadoRequest struct {
	Nombre       string `json:"nombre"`
	CodigoSKU    string `json:"codigo_sku"`
	Tipo         string `json:"tipo,omitempty"`
	UnidadMedida string `json:"unidad_medida,omitempty"`
	StockMinimo  int64  `json:"stock_minimo,omitempty"`
	Descripcion  string `json:"descripcion,omitempty"`
}

// ClienteRequest body para crear/actualizar clientes maquila.
type ClienteRequest struct {
	Rut              string `json:"rut"`
	RazonSocial      string `json:"razon_social"`
	NombreFantasia   string `json:"nombre_fantasia,omitempty"`
	Telefono         string `json:"telefono,omitempty"`
	EmailFacturacion string `json:"email_facturacion,omitempty"`
}

// ProveedorRequest body para crear/actualizar proveedores.
type ProveedorRequest struct {
	Rut         string `json:"rut"`
	RazonSocial string `json:"razon_social"`
	Alias       string `json:"alias,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ChoferRequest body para crear/actualizar choferes.
type ChoferRequest struct {
	Nombre   string `json:"nombre"`
	Rut      string `json:"rut,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CamionRequest body para crear/actualizar camiones.
type CamionRequest struct {
	Patente          string `json:"patente"`
	Marca            string `json:"marca,omitempty"`
	Modelo           string `json:"modelo,omitempty"`
	CapacidadCargaKg *int64 `json:"capacidad_carga_kg,omitempty"`
}

// CarroRequest body para crear/actualizar carros.
type CarroRequest struct {
	Patente          string `json:"patente"`
	Marca            string `json:"marca,omitempty"`
	Modelo           string `json:"modelo,omitempty"`
	CapacidadCargaKg *int64 `json:"capacidad_carga_kg,omitempty"`
}

// BuscarCodigoRequest query para búsqueda por código escaneado.
type BuscarCodigoRequest struct {
	Codigo string `query:"codigo"`
}

// ProductoAgricolaResponse materia prima.
type ProductoAgricolaResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Codigo      string `json:"codigo,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// ProductoTerminadoResponse producto de molienda con stock.
type ProductoTerminadoResponse struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	CodigoSKU    string `json:"codigo_sku"`
	Tipo         string `json:"tipo,omitempty"`
	UnidadMedida string `json:"unidad_medida,omitempty"`
	StockMinimo  int64  `json:"stock_minimo"`
	StockActual  int64  `json:"stock_actual"`
	Descripcion  string `json:"descripcion,omitempty"`
}

// ClienteResponse cliente maquila.
type ClienteResponse struct {
	ID               int64  `json:"id"`
	Rut              string `json:"rut"`
	RazonSocial      string `json:"razon_social"`
	NombreFantasia   string `json:"nombre_fantasia,omitempty"`
	Telefono         string `json:"telefono,omitempty"`
	EmailFacturacion string `json:"email_facturacion,omitempty"`
	Bloqueado        bool   `json:"bloqueado"`
}

// ProveedorResponse proveedor de grano.
type ProveedorResponse struct {
	ID          int64  `json:"id"`
	Rut         string `json:"rut"`
	RazonSocial string `json:"razon_social"`
	Alias       string `json:"alias,omitempty"`
	Telefono    string `json:"telefono,omitempty"`
	Email       string `json:"email,omitempty"`
}

// ChoferResponse chofer con código generado.
type ChoferResponse struct {
	ID           int64  `json:"id"`
	CodigoChofer string `json:"codigo_chofer"`
	Nombre       string `json:"nombre"`
	Rut          string `json:"rut,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Activo       bool   `json:"activo"`
}

// VehiculoResponse camión o carro con código generado.
type VehiculoResponse struct {
	ID               int64  `json:"id"`
	Codigo           string `json:"codigo"`
	Patente          string `json:"patente"`
	Marca            string `json:"marca,omitempty"`
	Modelo           string `json:"modelo,omitempty"`
	CapacidadCargaKg *int64 `json:"capacidad_carga_kg,omitempty"`
	Activo           bool   `json:"activo"`
}

// CrearSiloRequest body para POST /api/catalogo/silos.
type CrearSiloRequest struct {
	Codigo         string `json:"codigo"`
	Descripcion    string `json:"descripcion,omitempty"`
	BodegaID       *int64 `json:"bodega_id,omitempty"`
	CapacidadMaxKg int64  `json:"capacidad_max_kg"`
}

// SiloResponse silo con su ocupación derivada.
type SiloResponse struct {
	ID                  int64  `json:"id"`
	Codigo              string `json:"codigo"`
	Descripcion         string `json:"descripcion,omitempty"`
	BodegaID            *int64 `json:"bodega_id,omitempty"`
	CapacidadMaxKg      int64  `json:"capacidad_max_kg"`
	NivelActualKg       int64  `json:"nivel_actual_kg"`
	PorcentajeOcupacion int64  `json:"porcentaje_ocupacion"`
	AlertaRebalse       bool   `json:"alerta_rebalse"`
	Estado              string `json:"estado,omitempty"`
}

// CrearBodegaRequest body para POST /api/catalogo/bodegas.
type CrearBodegaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	SucursalID  *int64 `json:"sucursal_id,omitempty"`
}

// BodegaResponse bodega de silos.
type BodegaResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	SucursalID  *int64 `json:"sucursal_id,omitempty"`
}
