package cli_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mercprd/internal/cli"
	"mercprd/internal/models"
	"mercprd/internal/repositories"
	"mercprd/internal/services"
	"mercprd/internal/testdb"
)

type fixture struct {
	accounts *services.AccountService
	products *services.ProductService
	log      *logrus.Logger
	hook     *test.Hook
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testdb.OpenMigrated(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return &fixture{
		accounts: services.NewAccountService(repositories.NewGORMAccountRepository(db), services.NewBcryptHasher(bcrypt.MinCost), logger),
		products: services.NewProductService(repositories.NewGORMProductRepository(db), logger),
		log:      logger,
		hook:     hook,
	}
}

// run feeds lines to a fresh App and returns everything it printed.
func (f *fixture) run(t *testing.T, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	app := cli.New(cli.Options{
		In:       strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:      &out,
		Accounts: f.accounts,
		Products: f.products,
		Log:      f.log,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local) },
	})
	require.NoError(t, app.Run())
	return out.String()
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour, min int
		want      string
	}{
		{5, 59, "Boa noite!"},
		{6, 0, "Bom dia!"},
		{11, 59, "Bom dia!"},
		{12, 0, "Boa tarde!"},
		{17, 59, "Boa tarde!"},
		{18, 0, "Boa noite!"},
		{0, 0, "Boa noite!"},
	}
	for _, tt := range tests {
		got := cli.Greeting(time.Date(2024, 1, 1, tt.hour, tt.min, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got, "%02d:%02d", tt.hour, tt.min)
	}
}

func TestFormatProduct(t *testing.T) {
	line := cli.FormatProduct(models.Product{ID: 3, Name: "Rice", Price: 5.5, Quantity: 100})
	assert.Equal(t, "ID: 3 | Nome: Rice | Preço: R$5.50 | Quantidade: 100", line)
}

func TestApp_BootstrapAdmin(t *testing.T) {
	f := setup(t)

	out := f.run(t, "admin", "Root", "rootpass1", "ADMIN", "other", "otherpass1", "4")

	assert.Contains(t, out, "Bom dia! Bem-vindo(a) ao Sistema MercPrd.")
	assert.Equal(t, 1, strings.Count(out, "Nenhum administrador cadastrado"))
	assert.Contains(t, out, "Conta de administrador criada com sucesso!")
	assert.Contains(t, out, "Já existe uma conta de administrador. Não é possível criar outra.")
	assert.Contains(t, out, "Obrigado por usar o sistema. Até mais!")

	_, err := f.accounts.Authenticate("root", "rootpass1")
	assert.NoError(t, err)
}

func TestApp_RegisterAndLoginRouting(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.BootstrapAdmin("root", "rootpass1")
	require.NoError(t, err)

	out := f.run(t,
		"2", "Alice", "abcdefg1",
		"2", "alice", "zzzzzzz9",
		"2", "bob", "weak",
		"1", "alice", "wrongpass1",
		"1", "ALICE", "abcdefg1", "4",
		"1", "root", "rootpass1", "4",
		"9",
		"4",
	)

	assert.Contains(t, out, "Conta criada com sucesso! Agora você pode fazer o login.")
	assert.Contains(t, out, "Este nome de usuário já existe. Por favor, escolha outro.")
	assert.Contains(t, out, "A senha deve ter no mínimo 8 caracteres, com pelo menos uma letra e um número.")
	assert.Contains(t, out, "Erro: Usuário ou senha inválidos.")
	assert.Contains(t, out, "Login bem-sucedido! Bem-vindo(a), Alice!")
	assert.Contains(t, out, "--- Menu do Usuário Comum ---")
	assert.Contains(t, out, "Saindo do menu de usuário...")
	assert.Contains(t, out, "Login bem-sucedido! Bem-vindo(a), Root!")
	assert.Contains(t, out, "--- Menu do Administrador ---")
	assert.Contains(t, out, "Saindo do menu de administrador...")
	assert.Contains(t, out, "Opção inválida. Por favor, tente novamente.")
	assert.NotContains(t, out, "Nenhum administrador cadastrado")
}

func TestApp_ChangePassword(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.Register("bob", "bobpass12")
	require.NoError(t, err)

	out := f.run(t,
		"3", "bob", "bobpass12", "short",
		"3", "bob", "bobpass12", "newpass123",
		"1", "bob", "newpass123", "3", "newpass123", "again4567", "4",
		"4",
	)

	assert.Contains(t, out, "Senha alterada com sucesso!")
	_, err = f.accounts.Authenticate("bob", "again4567")
	assert.NoError(t, err)
}

func TestApp_ProductLifecycle(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.BootstrapAdmin("root", "rootpass1")
	require.NoError(t, err)
	_, err = f.accounts.Register("alice", "abcdefg1")
	require.NoError(t, err)

	out := f.run(t,
		// a regular user may list and create
		"1", "alice", "abcdefg1",
		"1",
		"2", "Rice", "5.50", "100",
		"2", "Beans", "abc", "1",
		"1",
		"4",
		// the administrator edits and deletes
		"1", "root", "rootpass1", "2",
		"3", "1", "", "", "80",
		"3", "1", "Arroz", "caro", "",
		"3", "1", "", "", "",
		"3", "x",
		"2",
		"4", "1", "n",
		"4", "1", "s",
		"4", "1",
		"2",
		"5", "4",
		"4",
	)

	assert.Contains(t, out, "Nenhum produto cadastrado.")
	assert.Contains(t, out, "Produto cadastrado com sucesso!")
	assert.Contains(t, out, "Preço e quantidade devem ser números não negativos.")
	assert.Contains(t, out, "ID: 1 | Nome: Rice | Preço: R$5.50 | Quantidade: 100")
	assert.Contains(t, out, "Produto editado com sucesso!")
	assert.Contains(t, out, "Nenhuma alteração foi feita.")
	assert.Contains(t, out, "Erro: ID do produto inválido.")
	assert.Contains(t, out, "ID: 1 | Nome: Rice | Preço: R$5.50 | Quantidade: 80")
	assert.NotContains(t, out, "Nome: Arroz")
	assert.Contains(t, out, "Tem certeza que deseja excluir o produto 'Rice'? (s/n): ")
	assert.Contains(t, out, "Operação cancelada.")
	assert.Contains(t, out, "Produto excluído com sucesso!")
	assert.Contains(t, out, "Erro: Produto não encontrado.")

	products, err := f.products.List()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestApp_ManageAccounts(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.BootstrapAdmin("root", "rootpass1")
	require.NoError(t, err)
	_, err = f.accounts.Register("alice", "abcdefg1")
	require.NoError(t, err)
	_, err = f.accounts.Register("bob", "bobpass12")
	require.NoError(t, err)

	out := f.run(t,
		"1", "root", "rootpass1", "1",
		"s", "a", "alice", "newpass12",
		"s", "a", "ghost",
		"s", "e", "bob", "n",
		"s", "e", "Bob", "s",
		"s", "x",
		"talvez",
		"n",
		"4", "4",
	)

	assert.Contains(t, out, " - Usuário: Alice (Usuário Comum)")
	assert.Contains(t, out, " - Usuário: Root (Administrador)")
	assert.Contains(t, out, "Senha do usuário 'alice' alterada com sucesso!")
	assert.Contains(t, out, "Erro: Usuário não encontrado.")
	assert.Contains(t, out, "Conta de 'Bob' excluída com sucesso.")
	assert.Contains(t, out, "Opção inválida. Por favor, digite 's' ou 'n'.")
	assert.Contains(t, out, "Voltando ao menu principal do administrador.")

	lastListing := out[strings.LastIndex(out, "Lista de contas atualizada:"):]
	assert.NotContains(t, lastListing, "Bob")

	_, err = f.accounts.Authenticate("alice", "newpass12")
	assert.NoError(t, err)
	summaries, err := f.accounts.AdminListAccounts()
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestApp_ClosedInputEndsRun(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.BootstrapAdmin("root", "rootpass1")
	require.NoError(t, err)

	out := f.run(t, "1", "root", "rootpass1")
	assert.Contains(t, out, "--- Menu do Administrador ---")
}

func TestApp_SessionLogging(t *testing.T) {
	f := setup(t)
	_, err := f.accounts.Register("alice", "abcdefg1")
	require.NoError(t, err)

	f.run(t, "1", "alice", "abcdefg1", "4", "4")

	var started, ended *logrus.Entry
	for _, e := range f.hook.AllEntries() {
		switch e.Message {
		case "session started":
			started = e
		case "session ended":
			ended = e
		}
	}
	require.NotNil(t, started)
	require.NotNil(t, ended)
	assert.Equal(t, "alice", started.Data["username"])
	assert.NotEmpty(t, started.Data["session"])
	assert.Equal(t, started.Data["session"], ended.Data["session"])
}

func TestApp_LongInputLinesReturnToMenu(t *testing.T) {
	f := setup(t)
	long := strings.Repeat("x", 70000)

	out := f.run(t,
		long,
		"2", long, "abcdefg1",
		"1", "nobody", long,
		"4",
	)

	assert.Contains(t, out, "Opção inválida. Por favor, tente novamente.")
	assert.Contains(t, out, "Conta criada com sucesso! Agora você pode fazer o login.")
	assert.Contains(t, out, "Erro: Usuário ou senha inválidos.")
	assert.Contains(t, out, "Obrigado por usar o sistema. Até mais!")

	_, err := f.accounts.Authenticate(long, "abcdefg1")
	assert.NoError(t, err)
}

func TestApp_LastLineWithoutNewline(t *testing.T) {
	f := setup(t)

	var out bytes.Buffer
	app := cli.New(cli.Options{
		In:       strings.NewReader("4"),
		Out:      &out,
		Accounts: f.accounts,
		Products: f.products,
	})
	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "Obrigado por usar o sistema. Até mais!")
}
