package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Juandaamez/inventario-backend/ia"
	"github.com/Juandaamez/inventario-backend/models"
	"github.com/Juandaamez/inventario-backend/utils"
)

type primarioFalso struct {
	respuesta []byte
	err       error
	llamadas  int
}

func (p *primarioFalso) Enviar(_ context.Context, _ Mensaje) ([]byte, error) {
	p.llamadas++
	return p.respuesta, p.err
}

type respaldoFalso struct {
	enviados int
	err      error
	llamadas int
}

func (r *respaldoFalso) Enviar(_ Mensaje) (int, error) {
	r.llamadas++
	return r.enviados, r.err
}

var mensajePrueba = Mensaje{
	Para:   "gerencia@example.com",
	Asunto: "Reporte de Inventario",
	HTML:   "<html><body>hola</body></html>",
}

func TestDispatcherPrimarioExitoso(t *testing.T) {
	primario := &primarioFalso{respuesta: []byte(`{"id":"abc"}`)}
	respaldo := &respaldoFalso{enviados: 1}
	d := NuevoDispatcher(primario, respaldo)

	res := d.Enviar(context.Background(), mensajePrueba)
	if !res.Exitoso || res.Proveedor != models.ProveedorEmailResend {
		t.Fatalf("resultado = %+v", res)
	}
	if string(res.Respuesta) != `{"id":"abc"}` {
		t.Fatalf("respuesta = %q", res.Respuesta)
	}
	if respaldo.llamadas != 0 {
		t.Fatal("el respaldo no debe usarse cuando el primario envia")
	}
}

func TestDispatcherFallbackSoloSinCredenciales(t *testing.T) {
	primario := &primarioFalso{
		err: fmt.Errorf("RESEND_API_KEY no configurada: %w", utils.ErrorMissingCredential),
	}
	respaldo := &respaldoFalso{enviados: 1}
	d := NuevoDispatcher(primario, respaldo)

	res := d.Enviar(context.Background(), mensajePrueba)
	if !res.Exitoso || res.Proveedor != models.ProveedorEmailSMTP {
		t.Fatalf("resultado = %+v", res)
	}
	if respaldo.llamadas != 1 {
		t.Fatalf("llamadas al respaldo = %d", respaldo.llamadas)
	}
}

func TestDispatcherFalloDeProveedorNoHaceFallback(t *testing.T) {
	primario := &primarioFalso{
		err: &utils.DeliveryError{Proveedor: "resend", Detalle: "http 422: destinatario invalido"},
	}
	respaldo := &respaldoFalso{enviados: 1}
	d := NuevoDispatcher(primario, respaldo)

	res := d.Enviar(context.Background(), mensajePrueba)
	if res.Exitoso {
		t.Fatal("un fallo del proveedor primario no puede reportarse como exito")
	}
	if res.Proveedor != models.ProveedorEmailResend {
		t.Fatalf("proveedor = %q", res.Proveedor)
	}
	if !strings.Contains(res.Mensaje, "422") {
		t.Fatalf("mensaje = %q", res.Mensaje)
	}
	if respaldo.llamadas != 0 {
		t.Fatal("no debe haber fallback ante un fallo real del primario")
	}
}

func TestDispatcherRespaldoCeroEnviados(t *testing.T) {
	primario := &primarioFalso{
		err: fmt.Errorf("sin credenciales: %w", utils.ErrorMissingCredential),
	}
	respaldo := &respaldoFalso{enviados: 0}
	d := NuevoDispatcher(primario, respaldo)

	res := d.Enviar(context.Background(), mensajePrueba)
	if res.Exitoso {
		t.Fatal("cero mensajes enviados debe reportarse como fallo")
	}
	if res.Proveedor != models.ProveedorEmailSMTP || res.Mensaje == "" {
		t.Fatalf("resultado = %+v", res)
	}
}

func TestDispatcherRespaldoConError(t *testing.T) {
	primario := &primarioFalso{
		err: fmt.Errorf("sin credenciales: %w", utils.ErrorMissingCredential),
	}
	respaldo := &respaldoFalso{err: errors.New("dial tcp: conexion rechazada")}
	d := NuevoDispatcher(primario, respaldo)

	res := d.Enviar(context.Background(), mensajePrueba)
	if res.Exitoso || res.Proveedor != models.ProveedorEmailSMTP {
		t.Fatalf("resultado = %+v", res)
	}
	if !strings.Contains(res.Mensaje, "rechazada") {
		t.Fatalf("mensaje = %q", res.Mensaje)
	}
}

func TestResendSinAPIKey(t *testing.T) {
	c := NuevoResend(ResendConfig{BaseURL: "https://api.resend.com"})
	_, err := c.Enviar(context.Background(), mensajePrueba)
	if !errors.Is(err, utils.ErrorMissingCredential) {
		t.Fatalf("esperaba ErrorMissingCredential, obtuve %v", err)
	}
}

func TestSMTPSinHost(t *testing.T) {
	c := NuevoSMTP(SMTPConfig{})
	enviados, err := c.Enviar(mensajePrueba)
	if enviados != 0 || !errors.Is(err, utils.ErrorMissingCredential) {
		t.Fatalf("enviados=%d err=%v", enviados, err)
	}
}

func TestCuerpoBasico(t *testing.T) {
	cuerpo := CuerpoBasico("Ferreteria El Tornillo", 12, 340)
	for _, fragmento := range []string{"<html>", "</html>", "Ferreteria El Tornillo", "12", "340"} {
		if !strings.Contains(cuerpo, fragmento) {
			t.Fatalf("cuerpo basico sin %q:\n%s", fragmento, cuerpo)
		}
	}
}

func TestCuerpoAvanzado(t *testing.T) {
	alertas := []ia.Alerta{
		{Titulo: "Productos Agotados", Mensaje: "2 producto(s) sin stock disponible"},
	}
	hash := strings.Repeat("ab", 32)

	cuerpo := CuerpoAvanzado("Ferreteria El Tornillo", 12, 340, alertas, hash)
	for _, fragmento := range []string{"Productos Agotados", "SHA-256", hash} {
		if !strings.Contains(cuerpo, fragmento) {
			t.Fatalf("cuerpo avanzado sin %q", fragmento)
		}
	}

	sinExtras := CuerpoAvanzado("Ferreteria El Tornillo", 12, 340, nil, "")
	if strings.Contains(sinExtras, "SHA-256") || strings.Contains(sinExtras, "Alertas") {
		t.Fatal("cuerpo sin alertas ni hash no debe incluir esas secciones")
	}
	if !strings.HasSuffix(sinExtras, "</body></html>") {
		t.Fatal("cuerpo mal terminado")
	}
}
