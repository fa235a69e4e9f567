package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxgen/internal/schema"
)

func loadSchema(t *testing.T, yaml string) *schema.TypeSchema {
	t.Helper()

	s, _, err := schema.Parse([]byte(yaml))
	require.NoError(t, err)

	return s
}

func readGolden(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(data)
}

const detailsYAML = `
type: CodeDeliveryDetails
doc: Details about where a verification code was sent.
from_internal: true
to_internal: true
fields:
  - name: Destination
    type: string
    doc: Where the code was sent.
    setter: true
    annotations: [nullable]
  - name: DeliveryMedium
    type: enum
    class: DeliveryMedium
    doc: How the code was sent.
    setter: true
  - name: Attempts
    type: integer
    doc: Number of delivery attempts.
  - name: Result
    type: object
    class: AuthenticationResult
    doc: Result of the authentication.
    setter: true
    annotations: [nullable]
  - name: AttributeName
    type: string
    doc: Attribute the code verifies.
`

func TestGenerator_Generate_SessionGolden(t *testing.T) {
	s, _, err := schema.LoadFile(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	assert.Equal(t, "cog-session.h", art.Declaration.Filename)
	assert.Equal(t, "cog-session.cpp", art.Implementation.Filename)

	assert.Equal(t, readGolden(t, "session.h.golden"), string(art.Declaration.Content))
	assert.Equal(t, readGolden(t, "session.cpp.golden"), string(art.Implementation.Content))
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	s := loadSchema(t, detailsYAML)
	g := NewGenerator(DefaultGeneratorConfig())

	first, err := g.Generate(s)
	require.NoError(t, err)

	second, err := g.Generate(s)
	require.NoError(t, err)

	third, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestGenerator_Generate_Marshaling(t *testing.T) {
	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(loadSchema(t, detailsYAML))
	require.NoError(t, err)

	header := string(art.Declaration.Content)
	source := string(art.Implementation.Content)

	// Constructor is internal-only when the type comes from marshaling.
	assert.NotContains(t, header, "cog_code_delivery_details_new")
	assert.NotContains(t, source, " * cog_code_delivery_details_new:")
	assert.Contains(t, source, "static CogCodeDeliveryDetails *\n_cog_code_delivery_details_new (void)\n{")

	assert.True(t, strings.HasPrefix(source,
		"#include <aws/cognito-idp/model/CodeDeliveryDetailsType.h>\n\n#include \"cog/cog-code-delivery-details.h\"\n\n"))
	assert.Contains(t, source, "\n\nusing Aws::CognitoIdentityProvider::Model::CodeDeliveryDetailsType;\n\n")

	assert.Contains(t, source, `CogCodeDeliveryDetails *
_cog_code_delivery_details_from_internal (const CodeDeliveryDetailsType& internal)
{
  CogCodeDeliveryDetails *retval = _cog_code_delivery_details_new ();
  retval->destination = g_strdup (internal.GetDestination ().c_str ());
  retval->delivery_medium = CogDeliveryMedium (internal.GetDeliveryMedium ());
  retval->attempts = internal.GetAttempts ();
  retval->result = _cog_authentication_result_from_internal (internal.GetResult ());
  retval->attribute_name = g_strdup (internal.GetAttributeName ().c_str ());
  return retval;
}`)

	// Nullable owned fields are skipped when absent, in field order.
	assert.Contains(t, source, `CodeDeliveryDetailsType
_cog_code_delivery_details_to_internal (CogCodeDeliveryDetails *self)
{
  CodeDeliveryDetailsType retval;
  if (self->destination)
    retval.WithDestination (self->destination);
  retval.WithDeliveryMedium (static_cast<Aws::CognitoIdentityProvider::Model::DeliveryMediumType> (self->delivery_medium));
  retval.WithAttempts (self->attempts);
  if (self->result)
    retval.WithResult (_cog_authentication_result_to_internal (self->result));
  retval.WithAttributeName (self->attribute_name);

  return retval;
}
`)
	assert.True(t, strings.HasSuffix(source, "  return retval;\n}\n"))
}

func TestGenerator_Generate_ToExternalChain(t *testing.T) {
	s := loadSchema(t, `
type: UserPool
doc: d
to_internal: true
fields:
  - name: Name
    type: string
    doc: d
  - name: Owner
    type: object
    class: User
    doc: d
  - name: Size
    type: integer
    doc: d
`)

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(string(art.Implementation.Content), `UserPoolType
_cog_user_pool_to_internal (CogUserPool *self)
{
  return UserPoolType ()
    .WithName (self->name)
    .WithOwner (_cog_user_to_internal (self->owner))
    .WithSize (self->size)
    ;
}
`))
}

func TestGenerator_Generate_MarshalBlocksOmitted(t *testing.T) {
	tests := []struct {
		name       string
		flags      string
		from, to   bool
		publicCtor bool
	}{
		{name: "none", flags: "", publicCtor: true},
		{name: "to only", flags: "to_internal: true\n", to: true, publicCtor: true},
		{name: "from only", flags: "from_internal: true\n", from: true},
		{name: "both", flags: "from_internal: true\nto_internal: true\n", from: true, to: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadSchema(t, tt.flags+"type: Session\ndoc: d\nfields:\n  - name: Token\n    type: string\n    doc: d\n")
			assert.Equal(t, tt.publicCtor, s.PublicConstructor())

			art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
			require.NoError(t, err)

			header := string(art.Declaration.Content)
			source := string(art.Implementation.Content)

			assert.Equal(t, tt.from, strings.Contains(source, "_cog_session_from_internal"))
			assert.Equal(t, tt.to, strings.Contains(source, "_cog_session_to_internal"))
			assert.Equal(t, tt.from || tt.to, strings.Contains(source, "using Aws::"))
			assert.Equal(t, tt.publicCtor, strings.Contains(header, "CogSession *cog_session_new (void);"))
			assert.Equal(t, tt.publicCtor, strings.Contains(source, " * cog_session_new:\n"))
		})
	}
}

func TestGenerator_Generate_FieldOrderPreserved(t *testing.T) {
	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(loadSchema(t, detailsYAML))
	require.NoError(t, err)

	header := string(art.Declaration.Content)
	source := string(art.Implementation.Content)

	section := func(doc, start, end string) string {
		i := strings.Index(doc, start)
		require.GreaterOrEqual(t, i, 0, start)

		j := strings.Index(doc[i:], end)
		require.GreaterOrEqual(t, j, 0, end)

		return doc[i : i+j]
	}

	assertOrder := func(text string, needles ...string) {
		t.Helper()

		last := -1

		for _, n := range needles {
			idx := strings.Index(text, n)
			require.GreaterOrEqual(t, idx, 0, "missing %q", n)
			assert.Greater(t, idx, last, "%q out of order", n)
			last = idx
		}
	}

	fields := []string{"destination", "delivery_medium", "attempts", "result", "attribute_name"}

	members := make([]string, 0, len(fields))
	docs := make([]string, 0, len(fields))
	copies := make([]string, 0, len(fields))
	froms := make([]string, 0, len(fields))

	for _, f := range fields {
		members = append(members, f+";")
		docs = append(docs, " * @"+f+":")
		copies = append(copies, "copy->"+f+" = ")
		froms = append(froms, "retval->"+f+" = ")
	}

	assertOrder(section(header, "struct _CogCodeDeliveryDetails\n", "};"), members...)
	assertOrder(section(header, " * CogCodeDeliveryDetails:", " */"), docs...)
	assertOrder(section(source, "cog_code_delivery_details_copy (CogCodeDeliveryDetails *self)\n{", "return copy;"), copies...)
	assertOrder(section(source, "cog_code_delivery_details_free (CogCodeDeliveryDetails *self)\n{", "g_slice_free"),
		"&self->destination,", "&self->result,", "&self->attribute_name,")
	assertOrder(section(source, "_from_internal (", "return retval;"), froms...)
	assertOrder(section(source, "_to_internal (", "  return retval;"),
		".WithDestination", ".WithDeliveryMedium", ".WithAttempts", ".WithResult", ".WithAttributeName")

	// Setters appear in field order among fields that have one.
	assertOrder(header, "cog_code_delivery_details_set_destination", "cog_code_delivery_details_set_delivery_medium",
		"cog_code_delivery_details_set_result")
	assert.NotContains(t, header, "set_attempts")
	assert.NotContains(t, header, "set_attribute_name")
}

func TestGenerator_Generate_ObjectAndEnumSetters(t *testing.T) {
	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(loadSchema(t, detailsYAML))
	require.NoError(t, err)

	source := string(art.Implementation.Content)

	assert.Contains(t, source, `void
cog_code_delivery_details_set_result (CogCodeDeliveryDetails *self,
                                      CogAuthenticationResult *result)
{
  g_return_if_fail (self);
  g_return_if_fail (self->ref_count);

  g_clear_pointer (&self->result, cog_authentication_result_unref);
  if (result)
    self->result = cog_authentication_result_copy (result);
}`)

	assert.Contains(t, source, `void
cog_code_delivery_details_set_delivery_medium (CogCodeDeliveryDetails *self,
                                               CogDeliveryMedium delivery_medium)
{
  g_return_if_fail (self);
  g_return_if_fail (self->ref_count);

  self->delivery_medium = delivery_medium;
}`)

	assert.Contains(t, source, " * @delivery_medium: a #CogDeliveryMedium\n")
	assert.Contains(t, source, " * @result: (nullable): a #CogAuthenticationResult\n")

	// Copy never aliases owned storage.
	assert.Contains(t, source, "  if (self->result)\n    copy->result = cog_authentication_result_copy (self->result);\n")
	assert.Contains(t, source, "  if (self->attribute_name)\n    copy->attribute_name = g_strdup (self->attribute_name);\n")
	assert.Contains(t, source, "  copy->delivery_medium = self->delivery_medium;\n")
	assert.NotContains(t, source, "copy->result = self->result;")
}

func TestGenerator_Generate_NonNullableOwnedFields(t *testing.T) {
	s := loadSchema(t, `
type: Login
doc: d
fields:
  - name: Username
    type: string
    doc: d
    setter: true
  - name: Metadata
    type: object
    class: AnalyticsMetadata
    doc: d
    setter: true
`)

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	source := string(art.Implementation.Content)

	assert.Contains(t, source, `  g_return_if_fail (username && *username);

  g_clear_pointer (&self->username, g_free);
  self->username = g_strdup (username);
}`)
	assert.Contains(t, source, `  g_return_if_fail (metadata);

  g_clear_pointer (&self->metadata, cog_analytics_metadata_unref);
  self->metadata = cog_analytics_metadata_copy (metadata);
}`)
}

func TestGenerator_Generate_NoFields(t *testing.T) {
	s := loadSchema(t, "type: Empty\ndoc: Nothing.\nfields: []\n")

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	header := string(art.Declaration.Content)
	source := string(art.Implementation.Content)

	assert.Contains(t, header, "/**\n * CogEmpty:\n *\n * Nothing.\n */\nstruct _CogEmpty\n{\n  /*< private >*/\n  unsigned ref_count;\n};")
	assert.Contains(t, source, "  CogEmpty *copy = cog_empty_new ();\n\n  return copy;\n}")
	assert.Contains(t, source, "  g_assert_cmpint (self->ref_count, ==, 0);\n\n  g_slice_free (CogEmpty, self);\n}")
	assert.NotContains(t, source, "\n\n\n")
	assert.NotContains(t, header, "\n\n\n")
}

func TestGenerator_Generate_FileHeads(t *testing.T) {
	s := loadSchema(t, `
type: Session
doc: d
h_file_head: |
  #include "cog/cog-authentication-result.h"
c_file_head: |
  #include "cog/cog-boxed-private.h"
  #include "cog/cog-utils-private.h"
fields: []
`)

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	assert.Contains(t, string(art.Declaration.Content),
		"#include \"cog/cog-macros.h\"\n#include \"cog/cog-authentication-result.h\"\n\nG_BEGIN_DECLS\n")
	assert.True(t, strings.HasPrefix(string(art.Implementation.Content),
		"#include \"cog/cog-session.h\"\n#include \"cog/cog-boxed-private.h\"\n#include \"cog/cog-utils-private.h\"\n\nG_DEFINE_BOXED_TYPE"))
}

func TestGenerator_Generate_WrapsLongDocs(t *testing.T) {
	long := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 6)

	s := loadSchema(t, "type: Session\ndoc: "+long+"\nfields:\n  - name: Token\n    type: string\n    doc: "+long+"\n")

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.NoError(t, err)

	header := string(art.Declaration.Content)
	start := strings.Index(header, "/**")
	end := strings.Index(header, " */")
	require.Greater(t, end, start)

	lines := strings.Split(header[start:end], "\n")
	assert.Greater(t, len(lines), 6)

	var words []string

	for _, line := range lines[1:] {
		assert.LessOrEqual(t, len(line), 80, line)
		assert.True(t, strings.HasPrefix(line, " *"), line)
		words = append(words, strings.Fields(strings.TrimPrefix(line, " *"))...)
	}

	assert.Equal(t, "CogSession:", words[0])
	assert.Equal(t, "@token:", words[1])
	assert.Equal(t, 2*len(strings.Fields(long))+2, len(words))
}

func TestGenerator_Generate_CustomConfig(t *testing.T) {
	cfg := GeneratorConfig{
		Prefix:             "Gdm",
		IncludeDir:         "",
		ExternalNamespace:  "",
		ExternalHeaderDir:  "sdk/model",
		ExternalTypeSuffix: "Model",
		DocWidth:           60,
	}

	s := loadSchema(t, `
type: UserPool
doc: d
to_internal: true
fields:
  - name: Kind
    type: enum
    class: PoolKind
    doc: d
`)

	art, err := NewGenerator(cfg).Generate(s)
	require.NoError(t, err)

	assert.Equal(t, "gdm-user-pool.h", art.Declaration.Filename)
	assert.Equal(t, "gdm-user-pool.cpp", art.Implementation.Filename)

	header := string(art.Declaration.Content)
	source := string(art.Implementation.Content)

	assert.Contains(t, header, "#include \"gdm-macros.h\"\n")
	assert.Contains(t, header, "#define GDM_TYPE_USER_POOL (gdm_user_pool_get_type ())")
	assert.Contains(t, header, "GDM_AVAILABLE_IN_ALL\nGdmUserPool *gdm_user_pool_new (void);")
	assert.Contains(t, source, "#include <sdk/model/UserPoolModel.h>\n")
	assert.Contains(t, source, "using UserPoolModel;")
	assert.Contains(t, source, ".WithKind (static_cast<PoolKindModel> (self->kind))")
}

func TestGenerator_Generate_InvalidConfig(t *testing.T) {
	s := loadSchema(t, "type: Session\ndoc: d\nfields: []\n")

	cfg := DefaultGeneratorConfig()
	cfg.Prefix = "cog"

	_, err := NewGenerator(cfg).Generate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid generator configuration")

	cfg = DefaultGeneratorConfig()
	cfg.DocWidth = 4

	_, err = NewGenerator(cfg).Generate(s)
	require.Error(t, err)
}

func TestGenerator_Generate_UnsupportedKind(t *testing.T) {
	s := &schema.TypeSchema{
		Name: "Session",
		Doc:  "d",
		Fields: []schema.FieldSpec{
			{Name: "Token", Kind: schema.KindString, Doc: "d"},
			{Name: "Weird", Kind: schema.Kind(42), Doc: "d"},
		},
	}

	art, err := NewGenerator(DefaultGeneratorConfig()).Generate(s)
	require.Error(t, err)
	assert.Nil(t, art, "no artifact may be produced")

	var uk *schema.UnsupportedFieldKindError
	require.True(t, errors.As(err, &uk))
	assert.Equal(t, "Kind(42)", uk.Kind)
}
