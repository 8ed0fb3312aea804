package service

import "github.com/ignatzorin/proposal-backend/internal/models"

// builtinTemplates встроенные шаблоны администратора. Порядок задаёт имена файлов 00_..09_.
var builtinTemplates = []models.ProposalTemplate{
	{
		Title:    "Otimização de Tráfego",
		Subject:  "O tráfego dos seus anúncios pode render mais",
		IdealFor: "Empresas que já investem em anúncios, mas levam o tráfego para páginas genéricas.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Notei que vocês anunciam ativamente, mas parte do tráfego está sendo desperdiçado em links genéricos. " +
			"Nossa proposta é alinhar anúncios a landing pages específicas, aplicar testes A/B e otimizar o funil para reduzir CPL e aumentar a qualidade dos leads. " +
			"No entanto, notei um detalhe que impacta eficiência: [PROBLEMAS].",
	},
	{
		Title:    "Auditoria Visual",
		Subject:  "Seu site no celular está perdendo clientes",
		IdealFor: "Negócios com site lento ou confuso no mobile e alta taxa de abandono.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! A experiência mobile do site apresenta pontos críticos que geram alto abandono. " +
			"Oferecemos uma auditoria técnica e de usabilidade com correções rápidas de performance e fluxo de compra. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "High Ticket",
		Subject:  "Uma presença digital à altura do seu preço",
		IdealFor: "Serviços premium cuja presença online não justifica o valor cobrado.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Seu posicionamento premium exige uma presença online que justifique valores mais altos. " +
			"Propomos uma landing page com design de autoridade, provas sociais selecionadas e copy que alinha percepções à precificação. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "ROI",
		Subject:  "Mais faturamento com o que você já tem",
		IdealFor: "Clientes orientados a números que querem ver retorno financeiro mensurável.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Vamos focar em resultados financeiros claros: identificar oportunidades de CRO, otimizar canais e aumentar o faturamento mensurável. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Lançamento",
		Subject:  "Sua página de vendas pronta para o lançamento",
		IdealFor: "Infoprodutores e marcas com lançamento próximo e prazo curto.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Precisamos de uma página de vendas otimizada para lançamento com urgência: copy focada em benefícios, provas sociais e sequência de pré-lançamento. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Parceria",
		Subject:  "Conectando seu conteúdo ao checkout",
		IdealFor: "Criadores com boa audiência que convertem pouco entre conteúdo e compra.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Posicionamos nossa entrega como otimização do 'meio de campo' do funil, conectando conteúdo ao checkout e melhorando taxas entre tráfego e compra. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Solução Simples",
		Subject:  "Menos mensagens, mais clientes qualificados",
		IdealFor: "Negócios com atendimento por WhatsApp sobrecarregado.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Se o WhatsApp está sobrecarregado, implementamos um fluxo simples de qualificação para priorizar leads de maior valor e reduzir distrações. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Essencial para Começar",
		Subject:  "Sua primeira presença online profissional",
		IdealFor: "Profissionais e pequenos negócios que ainda não têm site.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Para quem está começando, desenvolvemos uma presença online essencial e profissional que gera confiança e primeiras conversões rápidas. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Validação de Ideia",
		Subject:  "Teste a demanda antes de investir pesado",
		IdealFor: "Empreendedores com uma ideia nova que precisam validar o mercado.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Vamos validar sua ideia com uma landing MVP para testar demanda antes de maiores investimentos. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
	{
		Title:    "Escassez de Portfólio",
		Subject:  "Condição especial para os primeiros clientes",
		IdealFor: "Quem está montando portfólio e precisa das primeiras provas sociais.",
		Body: "Olá, [NOME_DO_PROFISSIONAL]! Vou criar uma oferta limitada para captar os primeiros clientes e montar um portfólio com provas sociais rápidas. " +
			"No entanto, notei um detalhe: [PROBLEMAS].",
	},
}
